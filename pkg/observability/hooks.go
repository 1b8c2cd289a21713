// Package observability lets callers watch the pipeline without the
// pipeline depending on a metrics backend.
//
// Hooks are process-wide. Register them once before work starts:
//
//	counters := observability.NewCounters()
//	observability.SetPipelineHooks(counters)
//	observability.SetCacheHooks(counters)
//
// Library code fetches the current hooks at the call site:
//
//	observability.Pipeline().OnVariantSaved(ctx, path)
//
// Until something is registered every call goes to a no-op implementation.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the per-image pipeline.
type PipelineHooks interface {
	OnImageStart(ctx context.Context, source string)
	OnImageComplete(ctx context.Context, source string, variants int, duration time.Duration, err error)

	// OnVariantSaved reports one sweep output written to disk.
	OnVariantSaved(ctx context.Context, path string)

	// OnGridComplete reports the contact sheet of a sweep, err included.
	OnGridComplete(ctx context.Context, path string, duration time.Duration, err error)
}

// CacheHooks receives events from the drawing cache. keyType names the kind
// of entry, e.g. "lineart".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnImageStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnImageComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnVariantSaved(context.Context, string)                             {}
func (NoopPipelineHooks) OnGridComplete(context.Context, string, time.Duration, error)       {}

// NoopCacheHooks ignores every event. Embed it to implement a subset.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// The registry stores boxed interfaces so atomic.Pointer can hold them.
type (
	pipelineBox struct{ PipelineHooks }
	cacheBox    struct{ CacheHooks }
)

var (
	pipelineHooks atomic.Pointer[pipelineBox]
	cacheHooks    atomic.Pointer[cacheBox]
)

func init() { Reset() }

// SetPipelineHooks registers h for all later pipeline events. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.Store(&pipelineBox{h})
	}
}

// SetCacheHooks registers h for all later cache events. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&cacheBox{h})
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.Load().PipelineHooks }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.Load().CacheHooks }

// Reset restores the no-op hooks.
func Reset() {
	pipelineHooks.Store(&pipelineBox{NoopPipelineHooks{}})
	cacheHooks.Store(&cacheBox{NoopCacheHooks{}})
}
