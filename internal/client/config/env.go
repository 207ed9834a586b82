package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config for environment parsing. Unset variables leave
// the zero value, which the overlay skips.
type envConfig struct {
	APIBaseURL     string        `env:"NEARBY_API_URL"`
	RequestTimeout time.Duration `env:"NEARBY_REQUEST_TIMEOUT"`
}

// parseEnv overlays cfg with NEARBY_* environment variables.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}
	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}
