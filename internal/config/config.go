// Package config provides environment-driven configuration for the API server.
package config

import (
	"fmt"
	"os"
)

// Config aggregates every configuration section the server needs.
type Config struct {
	DatabaseURL string
	JWT         *JWTConfig
	Admin       *AdminConfig
	S3          *S3Config
}

// Load reads the full configuration from the environment.
// A missing DATABASE_URL is a fatal startup condition.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	jwtCfg, err := NewJWTConfig()
	if err != nil {
		return nil, err
	}

	adminCfg, err := NewAdminConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL: databaseURL,
		JWT:         jwtCfg,
		Admin:       adminCfg,
		S3:          NewS3Config(),
	}, nil
}
