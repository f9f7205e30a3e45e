// Package logging provides structured logging utilities.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level
	Level string `json:"level" mapstructure:"level"`

	// Format is the output format (json, console)
	Format string `json:"format" mapstructure:"format"`

	// Output is the output destination (stdout, stderr, file path)
	Output string `json:"output" mapstructure:"output"`

	// Development enables development mode
	Development bool `json:"development" mapstructure:"development"`
}

// DefaultConfig returns the CLI defaults: warnings and above on stderr, so
// quote output on stdout stays clean.
func DefaultConfig() Config {
	return Config{
		Level:       "warn",
		Format:      "console",
		Output:      "stderr",
		Development: false,
	}
}

// New builds a logger from cfg without touching the globals.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var writeSyncer zapcore.WriteSyncer
	switch cfg.Output {
	case "", "stderr":
		writeSyncer = zapcore.AddSync(os.Stderr)
	case "stdout":
		writeSyncer = zapcore.AddSync(os.Stdout)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writeSyncer = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	if cfg.Development {
		return zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
	}
	return zap.New(core, zap.AddCaller()), nil
}

// Initialize sets up the global logger
func Initialize(cfg Config) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}
	Logger = logger
	return nil
}

// Sync flushes the logger
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Named returns a child of the global logger for one component
func Named(component string) *zap.Logger {
	return Logger.Named(component)
}

// Debug logs at debug level
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func init() {
	_ = Initialize(DefaultConfig())
}
