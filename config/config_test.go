package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "labor.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, 5*time.Minute, cfg.ReloadInterval)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LABOR_PORT", "9090")
	t.Setenv("LABOR_DB", ":memory:")
	t.Setenv("LABOR_METRICS", "false")
	t.Setenv("LABOR_DEFAULT_YEAR", "2024")
	t.Setenv("LABOR_RELOAD_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, 2024, cfg.DefaultYear)
	assert.Equal(t, 30*time.Second, cfg.ReloadInterval)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("LABOR_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestConfig_Logger(t *testing.T) {
	cfg := Config{LogLevel: "debug", LogFormat: "json"}
	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = Config{LogLevel: "verbose"}.Logger()
	assert.Error(t, err)
}
