// Package cache stores rendered drawings between runs.
//
// Synthesizing a drawing is the expensive part of a sweep and is fully
// determined by the source pixels, the method, the blur radius, the resize
// budget and the denoise flag. Those inputs are hashed into a key with
// [LineartKey]; the cached value is the encoded PNG.
//
// [FileCache] keeps entries on disk for the CLI, [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// DefaultMaxAge is how long a FileCache entry stays valid.
const DefaultMaxAge = 30 * 24 * time.Hour

// Cache is a byte store keyed by strings.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// LineartKeyOpts are the synthesis inputs that change the rendered drawing.
type LineartKeyOpts struct {
	Method       string `json:"method"`
	Radius       int    `json:"radius"`
	TargetWidth  uint32 `json:"target_width"`
	TargetHeight uint32 `json:"target_height"`
	Denoise      bool   `json:"denoise"`
}

// LineartKey builds the cache key of a drawing rendered from the source
// whose content hash is sourceHash.
func LineartKey(sourceHash string, opts LineartKeyOpts) string {
	return hashKey("lineart", sourceHash, opts)
}
