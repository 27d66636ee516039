// Package config loads CLI process configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration of the rhizome CLI.
type Config struct {
	// HTTPAddr is the listen address of the introspection server.
	HTTPAddr string `env:"RHIZOME_HTTP_ADDR" envDefault:":8137"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"RHIZOME_LOG_LEVEL" envDefault:"info"`

	// RedisAddr enables the redis mirror store when non-empty.
	RedisAddr     string `env:"RHIZOME_REDIS_ADDR"`
	RedisPassword string `env:"RHIZOME_REDIS_PASSWORD"`
	RedisDB       int    `env:"RHIZOME_REDIS_DB"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
