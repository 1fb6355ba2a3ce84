// Package cache stores computed layouts, rendered artifacts and remote
// analyses behind a small key/value interface.
//
// The CLI uses [FileCache] under the XDG cache directory. The API server can
// share results across instances with [RedisCache] or [MongoCache]. Use
// [NullCache] to disable caching.
//
// Keys are built by a [Keyer] so every backend sees the same key layout:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(requestJSON), cache.LayoutKeyOpts{CatalogHash: h})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Entry lifetimes. Layouts and artifacts are pure functions of their
// inputs, so they live long; remote analyses may change with the model.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLAnalysis = time.Hour
	TTLHTTP     = time.Hour
)

// LayoutKeyOpts are the inputs besides the request that change a layout.
type LayoutKeyOpts struct {
	CatalogHash string `json:"catalog,omitempty"`
}

// ArtifactKeyOpts are the display settings that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Zoom   float64 `json:"zoom"`
	Labels bool    `json:"labels"`
	Legend bool    `json:"legend"`
	Grid   bool    `json:"grid"`
}

// Keyer builds cache keys.
type Keyer interface {
	HTTPKey(namespace, key string) string
	LayoutKey(requestHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	AnalysisKey(requestHash string) string
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns the key for a raw HTTP response.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// LayoutKey returns the key for a computed layout.
func (DefaultKeyer) LayoutKey(requestHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", requestHash, opts)
}

// ArtifactKey returns the key for a rendered artifact of a layout.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// AnalysisKey returns the key for a remote analysis of a request.
func (DefaultKeyer) AnalysisKey(requestHash string) string {
	return hashKey("analysis", requestHash)
}
