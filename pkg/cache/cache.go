// Package cache stores expensive intermediate results, such as the
// generator sets returned by a symmetry discoverer, between runs.
//
// Two backends are provided: [FileCache] for CLI use (one JSON file per
// entry below a directory) and [NullCache] when caching is disabled.
// Keys are built by a [Keyer] so that every input that influences a result
// is part of its key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored data and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// GeneratorsKeyOpts holds every discovery option that changes which
// generators a discoverer returns.
type GeneratorsKeyOpts struct {
	Discoverer            string `json:"discoverer"`
	StabilizeInitialState bool   `json:"stabilize_init"`
	StabilizeGoal         bool   `json:"stabilize_goal"`
}

// Keyer builds cache keys.
type Keyer interface {
	// GeneratorsKey returns the key for the generators of the task whose
	// encoding hashes to taskHash.
	GeneratorsKey(taskHash string, opts GeneratorsKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GeneratorsKey implements Keyer.
func (DefaultKeyer) GeneratorsKey(taskHash string, opts GeneratorsKeyOpts) string {
	return hashKey("generators", taskHash, opts)
}

// TTLGenerators is how long discovered generators stay cached. Symmetries
// depend only on the task, so entries are effectively permanent.
const TTLGenerators = 30 * 24 * time.Hour

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "prefix:" followed by the hash of the JSON encoding of
// parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
