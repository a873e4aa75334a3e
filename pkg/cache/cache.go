// Package cache stores sorted image outputs keyed by input content and sort
// options.
//
// Re-running porter on the same image with the same metric, threshold and
// output format is a pure function of those inputs, so the encoded result can
// be served from cache instead of decoding, sorting and encoding again.
//
// # Backends
//
//   - [FileCache]: hashed files under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for several machines or users
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] turns a content hash and [ResultKeyOpts] into a cache key.
// [ScopedKeyer] prefixes every key, which keeps unrelated tenants or
// experiments apart in a shared backend.
package cache

import (
	"context"
	"time"
)

// TTLResult is how long sorted outputs stay cached.
const TTLResult = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKeyOpts are the sort options that affect an output's bytes.
type ResultKeyOpts struct {
	Metric string `json:"metric"`
	Low    int    `json:"low"`
	High   int    `json:"high"`
	Format string `json:"format"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ResultKey returns the key for the output of sorting the input whose
	// content hash is inputHash.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// DefaultKeyer builds keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}
