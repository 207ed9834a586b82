// Package config assembles runtime settings for the Nearby CLI from
// defaults, an optional JSON file, environment variables and command-line
// flags, in that order of precedence (later sources win).
package config

import "time"

// Config holds runtime settings for the Nearby client.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, e.g. "http://localhost:3000/api".
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.RequestTimeout = 10 * time.Second
}

// Load constructs a Config, applies defaults, then overlays values from
// JSON (if a file is given), environment variables, and command-line flags.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
