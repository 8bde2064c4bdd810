// Package config reads service configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"prod"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8090"`

	DBPath    string `env:"DB_PATH" envDefault:"insights.db"`
	ModelPath string `env:"MODEL_PATH" envDefault:"assets/linear_model.json"`

	// PromoteSchedule is a cron expression for the nightly promotion of
	// yesterday's data; empty disables the scheduler.
	PromoteSchedule string `env:"PROMOTE_SCHEDULE"`

	// MinDailyRows is the coverage threshold for promoting a full day:
	// one reading every 15 minutes over 24 hours.
	MinDailyRows int `env:"MIN_DAILY_ROWS" envDefault:"96"`

	// TopFeatures caps the attribution and correlation maps.
	TopFeatures int `env:"TOP_FEATURES" envDefault:"5"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse environment")
	}
	if cfg.MinDailyRows < 1 {
		return Config{}, errors.Newf("MIN_DAILY_ROWS must be positive, got %d", cfg.MinDailyRows)
	}
	if cfg.TopFeatures < 1 {
		return Config{}, errors.Newf("TOP_FEATURES must be positive, got %d", cfg.TopFeatures)
	}
	return cfg, nil
}
