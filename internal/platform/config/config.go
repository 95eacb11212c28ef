// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, token codec) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
)

// Session store backends selectable through SESSION_STORE.
const (
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the Evolve Nova API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Session registry backend. Redis is only required when SessionStore is "redis".
	SessionStore string `env:"SESSION_STORE" envDefault:"postgres"`
	RedisURL     string `env:"REDIS_URL"`

	// Session token signing
	SessionSecret string        `env:"SESSION_SECRET,required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"   envDefault:"168h"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"12"`

	// Cookie and CORS behaviour for a frontend served from another origin
	CookieCrossSite bool     `env:"COOKIE_CROSS_SITE" envDefault:"false"`
	AllowedOrigins  []string `env:"ALLOWED_ORIGINS"   envSeparator:","`

	// Object Storage (Cloudflare R2 / S3-compatible) for payment proofs
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	// Bootstrap administrator, created on startup when both are set
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks the cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if len(c.SessionSecret) < constants.MinTokenSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", constants.MinTokenSecretLength))
	}

	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	switch c.SessionStore {
	case SessionStorePostgres:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when SESSION_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be %q or %q", SessionStorePostgres, SessionStoreRedis))
	}

	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StorageEnabled reports whether payment proof uploads can be accepted.
func (c *Config) StorageEnabled() bool {
	return strings.TrimSpace(c.S3Bucket) != ""
}
