// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"net/url"
	"time"
)

// Backend names the implementation behind a Cache.
type Backend string

// Cache backends.
const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for memory cache (0 = unlimited).
	MaxSize int

	// CleanupInterval is the interval for expired entry cleanup in memory.
	CleanupInterval time.Duration

	// FallbackToMemory uses a memory cache when Redis cannot be reached.
	FallbackToMemory bool
}

// Result is a created cache and how it was chosen.
type Result struct {
	Cache       Cache
	BackendType Backend
	IsFallback  bool
}

// New creates a cache from cfg. With a Redis URL it connects to Redis and,
// if that fails and FallbackToMemory is set, falls back to memory.
func New(cfg Config) (Result, error) {
	if cfg.RedisURL == "" {
		return Result{Cache: newMemory(cfg), BackendType: BackendMemory}, nil
	}

	rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
	if err == nil {
		slog.Info("using redis cache", "url", SanitizeRedisURL(cfg.RedisURL), "prefix", cfg.Prefix)
		return Result{Cache: rc, BackendType: BackendRedis}, nil
	}
	if !cfg.FallbackToMemory {
		return Result{}, err
	}

	slog.Warn("redis unavailable, falling back to memory cache",
		"url", SanitizeRedisURL(cfg.RedisURL), "error", err)
	return Result{Cache: newMemory(cfg), BackendType: BackendMemory, IsFallback: true}, nil
}

func newMemory(cfg Config) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}

// SanitizeRedisURL masks the password in a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}
