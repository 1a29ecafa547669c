package config

import "time"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".academy.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		RequestTimeout: 60 * time.Second,
		Session: SessionConfig{
			CookieName:    "academy_session",
			IdleTimeout:   12 * time.Hour,
			PruneInterval: 10 * time.Minute,
		},
	}
}
