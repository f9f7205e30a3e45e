package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeWritesToFile(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { Logger = previous })

	path := filepath.Join(t.TempDir(), "pricing.log")
	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: path}))

	Named("engine").Debug("quote computed", zap.String("category", "job"))
	Debug("catalog loaded")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logger":"engine"`)
	assert.Contains(t, string(data), `"msg":"quote computed"`)
	assert.Contains(t, string(data), `"msg":"catalog loaded"`)
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")
	logger, err := New(Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestUnopenableOutput(t *testing.T) {
	_, err := New(Config{Level: "info", Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}
