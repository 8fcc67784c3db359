// Package cache provides pluggable byte caches for registry responses.
//
// Three backends are available:
//   - [FileCache]: on-disk cache for CLI usage (the default)
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: no-op cache for tests and --no-cache runs
//
// Use [NewScoped] to namespace keys per data source so different sources
// sharing one backend cannot collide.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte values under string keys with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit; a miss
	// (including an expired entry) is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Hash computes the SHA-256 hex digest of data. Backends use it to derive
// filesystem- and wire-safe names from arbitrary keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Scoped prefixes every key before delegating to an inner cache.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped wraps inner so all keys gain the given prefix (e.g. "crates:").
func NewScoped(inner Cache, prefix string) *Scoped {
	return &Scoped{inner: inner, prefix: prefix}
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the underlying cache.
func (s *Scoped) Close() error { return s.inner.Close() }

var _ Cache = (*Scoped)(nil)
