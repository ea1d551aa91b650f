// Package cache provides pluggable byte-level caching for pipeline results.
//
// The analysis pipeline is deterministic: the same source text always
// produces the same flow structure, DOT text, and image bytes. That makes
// every stage output cacheable under a key derived from the source hash and
// the options that shaped it. The core pipeline never shares state between
// requests; caching is a transport-level optimization layered on top.
//
// Three backends are provided:
//   - [FileCache]: directory-based storage for CLI usage
//   - [RedisCache]: Redis-backed storage for multi-instance server deployments
//   - [NullCache]: no-op backend that disables caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached stage. Outputs are pure functions of the source,
// so these bound disk usage rather than staleness.
const (
	TTLStructure = 24 * time.Hour
	TTLDOT       = 24 * time.Hour
	TTLArtifact  = 24 * time.Hour
)

// Cache is the interface implemented by all cache backends.
// All implementations are safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
