package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of all environment variables, e.g. ILTABLE_ADDR.
const Prefix = "iltable"

// Config of the standalone http host.
type Config struct {
	Addr        string        `envconfig:"ADDR" default:":8080"`
	SourceType  string        `envconfig:"SOURCE_TYPE" default:"books"`
	SourceURL   string        `envconfig:"SOURCE_URL"`
	StoreURL    string        `envconfig:"STORE_URL" default:"memory://"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	LoadTimeout time.Duration `envconfig:"LOAD_TIMEOUT" default:"5m"`
}

// Load reads the config from the environment.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, fmt.Errorf("envconfig.Process: %w", err)
	}
	return &c, nil
}

// Usage prints the supported environment variables.
func Usage() error {
	return envconfig.Usage(Prefix, &Config{})
}
