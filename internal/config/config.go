package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment once at startup. A .env file, if
// present, is loaded by main before parsing.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	Debug           bool          `env:"DEBUG" envDefault:"false"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
