// Package cache provides content-addressed caching for pipeline stages.
//
// The expensive stages (layout, centrality, rendering) are all pure
// functions of their inputs, so results are cached under keys derived from
// the input hashes and the options that shaped the computation.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per stage. Graphs depend only on the input file and
// can live long; rendered artifacts are cheap to regenerate.
const (
	TTLGraph    = 30 * 24 * time.Hour
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte blobs under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// GraphKeyOpts are the options that change the derived co-occurrence graph.
type GraphKeyOpts struct {
	Weighted bool
}

// LayoutKeyOpts are the options that change computed node positions.
type LayoutKeyOpts struct {
	Seed       int64
	Iterations int
}

// ArtifactKeyOpts are the options that change the rendered image.
type ArtifactKeyOpts struct {
	Dark bool
	Log  bool
	Size int
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// GraphKey keys the co-occurrence graph derived from an input file.
	GraphKey(modelHash string, opts GraphKeyOpts) string
	// LayoutKey keys node positions and centrality for a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered image for a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage inputs and options into versioned keys.
// Keys embed a schema version so a format change invalidates old entries.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) GraphKey(modelHash string, opts GraphKeyOpts) string {
	return hashKey("graph:v1", modelHash, opts)
}

func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout:v1", graphHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:v1", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
