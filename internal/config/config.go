// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
	"listing-pricing/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. LISTINGPRICE_PRICING_CATALOG_PATH
const EnvPrefix = "LISTINGPRICE"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" mapstructure:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing" mapstructure:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// Currency is the currency every catalog amount is quoted in
	Currency types.Currency `json:"currency" mapstructure:"currency"`

	// CatalogPath is an HCL rate file. Empty means the built-in catalog.
	CatalogPath string `json:"catalog_path" mapstructure:"catalog_path"`

	// StatsPath is a YAML posting-stats snapshot used by the CLI
	StatsPath string `json:"stats_path" mapstructure:"stats_path"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default output format (text, json)
	Format string `json:"format" mapstructure:"format"`

	// ShowBreakdown prints the intermediate pipeline values
	ShowBreakdown bool `json:"show_breakdown" mapstructure:"show_breakdown"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Currency: types.CurrencyUSD,
		},
		Output: OutputConfig{
			Format:        "text",
			ShowBreakdown: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a JSON or YAML file, then applies
// LISTINGPRICE_* environment overrides. A missing file yields the defaults
// with overrides applied.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Config("read config "+path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Config("stat config "+path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Config("decode config", err)
	}
	if cfg.Pricing.Currency == "" {
		cfg.Pricing.Currency = types.CurrencyUSD
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("pricing.currency", string(d.Pricing.Currency))
	v.SetDefault("pricing.catalog_path", d.Pricing.CatalogPath)
	v.SetDefault("pricing.stats_path", d.Pricing.StatsPath)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.show_breakdown", d.Output.ShowBreakdown)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
}

// Save saves configuration to a file as JSON
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
