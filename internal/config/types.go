package config

import "time"

// Config is the top-level academy configuration, corresponding to .academy.yml.
type Config struct {
	Port            int           `yaml:"port" koanf:"port"`
	PublicURL       string        `yaml:"public_url" koanf:"public_url"`
	AllowedOrigins  []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeout  time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	Session         SessionConfig `yaml:"session" koanf:"session"`
}

// SessionConfig holds browser session settings.
type SessionConfig struct {
	CookieName    string        `yaml:"cookie_name" koanf:"cookie_name"`
	IdleTimeout   time.Duration `yaml:"idle_timeout" koanf:"idle_timeout"`
	PruneInterval time.Duration `yaml:"prune_interval" koanf:"prune_interval"`
}
