package cli

import (
	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"SHOWROOM_SERVER" envDefault:"http://localhost:8080"`
	Output    string `env:"SHOWROOM_OUTPUT" envDefault:"text"`
	Verbose   bool   `env:"SHOWROOM_VERBOSE"`
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		// Fall back to bare defaults on a malformed environment.
		return &Config{ServerURL: "http://localhost:8080", Output: "text"}
	}
	return cfg
}
