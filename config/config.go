// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/warp/labor-engine/logging"
)

// Config is the process configuration. Command-line flags override it.
type Config struct {
	Port      int    `env:"LABOR_PORT" envDefault:"8080"`
	DBPath    string `env:"LABOR_DB" envDefault:"labor.db"`
	LogLevel  string `env:"LABOR_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LABOR_LOG_FORMAT" envDefault:"text"`

	// RulesDir holds extra rule-set documents (*.yaml, *.yml, *.json).
	RulesDir string `env:"LABOR_RULES_DIR"`

	// Metrics exposes /metrics.
	Metrics bool `env:"LABOR_METRICS" envDefault:"true"`

	// DefaultYear is used when a request names no year. Zero means the
	// latest loaded rule book.
	DefaultYear int `env:"LABOR_DEFAULT_YEAR"`

	// ReloadInterval is how often stored rule books are reloaded. Zero
	// disables the reload scheduler.
	ReloadInterval time.Duration `env:"LABOR_RELOAD_INTERVAL" envDefault:"5m"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Logger builds the logger the configuration asks for.
func (c Config) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
