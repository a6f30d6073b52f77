// Package cache provides byte-level caching with pluggable backends.
//
// The carousel toolkit uses the cache for downloaded font files and other
// fetched assets so repeated runs don't hit the network. Three backends are
// available:
//   - file: entries stored as JSON files under a directory (CLI default)
//   - redis: shared cache for CI or multi-machine setups
//   - null: no-op cache for tests and --no-cache runs
//
// Keys are free-form strings; backends hash them before storage so any
// character is safe. Entries carry an optional TTL (0 = never expires).
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; an expired entry counts as a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
