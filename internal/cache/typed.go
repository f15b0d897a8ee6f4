// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TypedCache provides type-safe caching operations using generics.
// It wraps a Cache implementation and stores values as JSON.
type TypedCache[T any] struct {
	cache      Cache
	defaultTTL time.Duration
}

// NewTypedCache creates a new TypedCache wrapping the given cache implementation.
func NewTypedCache[T any](cache Cache, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get returns the cached value. found is false on a miss; err is set only
// for backend or decoding failures.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (value T, found bool, err error) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return value, false, nil
		}
		return value, false, err
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decoding cached %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value in the cache with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q for cache: %w", key, err)
	}
	return c.cache.Set(ctx, key, data, c.defaultTTL)
}

// GetOrLoad returns the cached value or calls load and caches its result.
// Cache failures are passed to onCacheErr and never fail the call.
func (c *TypedCache[T]) GetOrLoad(ctx context.Context, key string, load func() (T, error), onCacheErr func(error)) (T, error) {
	if value, found, err := c.Get(ctx, key); err != nil {
		onCacheErr(err)
	} else if found {
		return value, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		onCacheErr(err)
	}
	return value, nil
}
