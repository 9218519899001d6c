// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings command-line flags start from.
type Config struct {
	// Seed for the RNG; 0 draws one from crypto/rand.
	Seed        int64  `env:"LUMINA_SEED" envDefault:"0"`
	Plain       bool   `env:"LUMINA_PLAIN"`
	Trace       bool   `env:"LUMINA_TRACE"`
	ContentDir  string `env:"LUMINA_CONTENT_DIR"`
	Telemetry   bool   `env:"LUMINA_TELEMETRY"`
	ServiceName string `env:"LUMINA_SERVICE_NAME" envDefault:"lumina"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotenv reads the given .env files (".env" when none are named) into
// the process environment without overriding variables already set.
// Missing files are not an error.
func LoadDotenv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// Load reads .env files, then the environment.
func Load(files ...string) (Config, error) {
	var cfg Config
	if err := LoadDotenv(files...); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
