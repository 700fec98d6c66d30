package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the transport adapter settings.
type Config struct {
	Addr            string        `env:"SIGRPC_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"SIGRPC_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SIGRPC_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SIGRPC_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	MaxBodySize     int64         `env:"SIGRPC_MAX_BODY_SIZE" envDefault:"1048576"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxBodySize:     1 << 20,
	}
}

// ConfigFromEnv loads the adapter configuration from SIGRPC_* environment
// variables, falling back to the defaults above.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
