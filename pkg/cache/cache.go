// Package cache stores derived data keyed by content hashes.
//
// The engine caches the results of expensive image scans so that reopening
// a sprite sheet, or asking the HTTP API about the same sheet twice, does
// not flood-fill every region again. Three backends are provided:
//   - [NullCache] never stores anything
//   - [FileCache] writes JSON entries under a directory (CLI default)
//   - [RedisCache] shares entries between API instances
//
// Keys are built by a [Keyer] so that callers never assemble cache keys by
// hand. A [ScopedKeyer] adds a namespace prefix, which keeps separate
// configurations from reading each other's entries.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// A missing or expired key is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SpriteKeyOpts are the scan settings that affect a sprite scan result.
type SpriteKeyOpts struct {
	MinArea int `json:"min_area"`
}

// Keyer generates cache keys.
type Keyer interface {
	// SpriteKey is the key for the region list of an image with the given
	// content hash.
	SpriteKey(imageHash string, opts SpriteKeyOpts) string

	// DocumentKey is the key for a converted layout document.
	DocumentKey(docHash, format string) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SpriteKey implements Keyer.
func (DefaultKeyer) SpriteKey(imageHash string, opts SpriteKeyOpts) string {
	return hashKey("sprite", imageHash, opts)
}

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(docHash, format string) string {
	return "doc:" + format + ":" + docHash
}
