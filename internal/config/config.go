// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the lifesim process configuration.
type Config struct {
	DBPath   string `env:"LIFESIM_DB_PATH" envDefault:"data/lifesim.db"`
	Port     int    `env:"LIFESIM_PORT" envDefault:"8080"`
	AdminKey string `env:"LIFESIM_ADMIN_KEY"` // empty disables admin POST endpoints

	CORSOrigins []string `env:"LIFESIM_CORS_ORIGINS" envSeparator:","`

	LogLevel  string `env:"LIFESIM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LIFESIM_LOG_FORMAT" envDefault:"text"`

	Seed            int64  `env:"LIFESIM_SEED" envDefault:"0"` // 0 = non-deterministic
	RandomOrgAPIKey string `env:"RANDOM_ORG_API_KEY"`
	SpawnCount      int    `env:"LIFESIM_SPAWN_COUNT" envDefault:"12"`

	DecaySchedule string `env:"LIFESIM_DECAY_SCHEDULE" envDefault:"@every 1m"`
	DecayMinutes  int    `env:"LIFESIM_DECAY_MINUTES" envDefault:"60"`
	Autonomy      bool   `env:"LIFESIM_AUTONOMY" envDefault:"true"`

	ProfileCacheTTL    time.Duration `env:"LIFESIM_PROFILE_CACHE_TTL" envDefault:"10m"`
	RateLimitPerMinute int           `env:"LIFESIM_RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	TrustProxy         bool          `env:"LIFESIM_TRUST_PROXY" envDefault:"false"` // rate-limit on X-Forwarded-For
}

// Load parses and validates configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("LIFESIM_DB_PATH must not be empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("LIFESIM_PORT %d out of range", c.Port))
	}
	if c.DecayMinutes < 1 || c.DecayMinutes > 1440 {
		errs = append(errs, fmt.Errorf("LIFESIM_DECAY_MINUTES %d must be in [1, 1440]", c.DecayMinutes))
	}
	if c.SpawnCount < 0 {
		errs = append(errs, fmt.Errorf("LIFESIM_SPAWN_COUNT %d must not be negative", c.SpawnCount))
	}
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("LIFESIM_RATE_LIMIT_PER_MINUTE %d must be positive", c.RateLimitPerMinute))
	}
	if c.ProfileCacheTTL < 0 {
		errs = append(errs, errors.New("LIFESIM_PROFILE_CACHE_TTL must not be negative"))
	}
	return errors.Join(errs...)
}
