// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"SITE_DB_PATH" envDefault:"./data/site.db"`
	SessionSecret string `env:"SITE_SESSION_SECRET,required"`
	ServerHost    string `env:"SITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SITE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SITE_ENV" envDefault:"development"`
	LogLevel      string `env:"SITE_LOG_LEVEL" envDefault:"info"`
	BaseURL       string `env:"SITE_BASE_URL"` // Public URL used in sitemap.xml; defaults to http://host:port

	SessionLifetime time.Duration `env:"SITE_SESSION_LIFETIME" envDefault:"24h"`

	// Cache configuration
	RedisURL     string        `env:"SITE_REDIS_URL"`                        // Optional Redis URL for the list cache
	CachePrefix  string        `env:"SITE_CACHE_PREFIX" envDefault:"site:"`  // Redis key prefix
	CacheTTL     time.Duration `env:"SITE_CACHE_TTL" envDefault:"60s"`       // Lifetime of cached lists
	CacheMaxSize int           `env:"SITE_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// Seeding configuration
	DoSeed        bool   `env:"SITE_DO_SEED" envDefault:"false"`
	AdminEmail    string `env:"SITE_ADMIN_EMAIL" envDefault:"admin@ciphercorp.com"`
	AdminPassword string `env:"SITE_ADMIN_PASSWORD"` // Only read when seeding; never logged
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SiteURL returns the public base URL without a trailing slash.
func (c Config) SiteURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return "http://" + c.ServerAddr()
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// LogValue keeps secrets out of logs when the config itself is logged.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("db_path", c.DBPath),
		slog.String("addr", c.ServerAddr()),
		slog.String("site_url", c.SiteURL()),
		slog.String("env", c.Env),
		slog.String("log_level", c.LogLevel),
		slog.Duration("session_lifetime", c.SessionLifetime),
		slog.Bool("redis", c.UseRedisCache()),
		slog.Duration("cache_ttl", c.CacheTTL),
		slog.Bool("seed", c.DoSeed),
	)
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SITE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("SITE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("SITE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.SessionLifetime <= 0 {
		return nil, fmt.Errorf("SITE_SESSION_LIFETIME must be positive, got %s", cfg.SessionLifetime)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("SITE_CACHE_TTL must not be negative, got %s", cfg.CacheTTL)
	}

	switch cfg.Env {
	case "development", "production":
	default:
		return nil, fmt.Errorf("SITE_ENV must be development or production, got %q", cfg.Env)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
