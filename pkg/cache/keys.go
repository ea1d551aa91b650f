package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key prefixes for each cached pipeline stage. Keeping them distinct lets
// "cache clear" tooling and hooks report per-stage hit rates.
const (
	keyPrefixStructure = "structure"
	keyPrefixArtifact  = "artifact"
	keyPrefixSummary   = "summary"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// StructureKey returns the cache key for an extracted flow structure.
// sourceHash is the [Hash] of the raw source text.
func StructureKey(sourceHash string) string {
	return hashKey(keyPrefixStructure, sourceHash)
}

// ArtifactKey returns the cache key for a rasterized artifact (png, svg)
// of a source hash.
func ArtifactKey(sourceHash, format string) string {
	return hashKey(keyPrefixArtifact, sourceHash, format)
}

// SummaryKey returns the cache key for an AI summary of a source hash.
// The model name is part of the key: different models give different summaries.
func SummaryKey(sourceHash, model string) string {
	return hashKey(keyPrefixSummary, sourceHash, model)
}
