// Package cache defines the key-value cache abstraction used for sessions.
// Implementations: Redis for shared deployments, in-memory for single-node.
package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is a TTL key-value store.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if the key
	// doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// ErrCacheMiss indicates the key was not found in the cache.
var ErrCacheMiss = errors.New("cache miss")
