package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the server's environment-driven configuration.
type Config struct {
	Addr    string `env:"SCHEMAFORM_ADDR" envDefault:":3001"`
	DataDir string `env:"SCHEMAFORM_DATA_DIR" envDefault:"data"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("server: parse config: %w", err)
	}
	return cfg, nil
}
