package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config is the runtime configuration shared by the client and the asset tool.
type Config struct {
	AssetsDir     string        `env:"ASSETS_DIR" envDefault:"assets"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LoadWorkers   int           `env:"LOAD_WORKERS" envDefault:"4"`
	ReloadAddr    string        `env:"RELOAD_ADDR"`
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE" envDefault:"300ms"`
}

// Load reads TACTICS_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TACTICS_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.LoadWorkers < 1 {
		return Config{}, fmt.Errorf("TACTICS_LOAD_WORKERS must be at least 1, got %d", cfg.LoadWorkers)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("TACTICS_LOG_LEVEL: %w", err)
	}
	return level, nil
}
