// Package cache stores rendered diagram artifacts.
//
// Every backend implements [Cache]. The CLI uses [FileCache] under the user's
// cache directory, the HTTP service can share artifacts through [RedisCache]
// or [MongoCache], and [NullCache] disables caching entirely.
//
// Keys are produced by a [Keyer]. Artifact keys hash the config digest
// together with every option that changes the rendered bytes, so two renders
// share an entry only when their output is identical:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cfg.Hash(), cache.ArtifactKeyOpts{Format: "svg", Grid: true, Labels: true})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	// TTLArtifact is how long rendered artifacts stay cached. Artifacts are
	// pure functions of their key, so this only bounds disk usage.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLScene is how long composed scene dumps stay cached.
	TTLScene = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
