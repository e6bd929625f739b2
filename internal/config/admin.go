// Package config provides environment-driven configuration for the API server.
package config

import (
	"fmt"
	"os"
)

// AdminConfig holds the back-office credentials.
//
// The dashboard has a single fixed admin account. By default the
// configured password is compared directly against the submitted one;
// setting ADMIN_DASHBOARD_PASSWORD_HASH to a bcrypt hash replaces the
// plaintext comparison entirely.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

// NewAdminConfig creates admin credentials configuration from environment
// variables. It reads ADMIN_DASHBOARD_USER, ADMIN_DASHBOARD_PASSWORD and
// optionally ADMIN_DASHBOARD_PASSWORD_HASH.
func NewAdminConfig() (*AdminConfig, error) {
	cfg := &AdminConfig{
		Username:     os.Getenv("ADMIN_DASHBOARD_USER"),
		Password:     os.Getenv("ADMIN_DASHBOARD_PASSWORD"),
		PasswordHash: os.Getenv("ADMIN_DASHBOARD_PASSWORD_HASH"),
	}

	if cfg.Username == "" {
		return nil, fmt.Errorf("ADMIN_DASHBOARD_USER is required but not set")
	}
	if cfg.Password == "" && cfg.PasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_DASHBOARD_PASSWORD or ADMIN_DASHBOARD_PASSWORD_HASH is required but not set")
	}

	return cfg, nil
}
