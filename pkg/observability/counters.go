package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters tallies pipeline and cache events. It implements both hook
// interfaces and is safe for concurrent use.
type Counters struct {
	images    atomic.Int64
	failed    atomic.Int64
	variants  atomic.Int64
	grids     atomic.Int64
	hits      atomic.Int64
	misses    atomic.Int64
	cached    atomic.Int64 // bytes written to the cache
	busyNanos atomic.Int64 // summed per-image wall time
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Images       int64
	Failed       int64
	Variants     int64
	Grids        int64
	CacheHits    int64
	CacheMisses  int64
	CachedBytes  int64
	BusyDuration time.Duration
}

func NewCounters() *Counters { return &Counters{} }

func (c *Counters) OnImageStart(context.Context, string) {}

func (c *Counters) OnImageComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	c.images.Add(1)
	if err != nil {
		c.failed.Add(1)
	}
	c.busyNanos.Add(int64(d))
}

func (c *Counters) OnVariantSaved(context.Context, string) { c.variants.Add(1) }

func (c *Counters) OnGridComplete(_ context.Context, _ string, _ time.Duration, err error) {
	if err == nil {
		c.grids.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.hits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.misses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cached.Add(int64(size))
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Images:       c.images.Load(),
		Failed:       c.failed.Load(),
		Variants:     c.variants.Load(),
		Grids:        c.grids.Load(),
		CacheHits:    c.hits.Load(),
		CacheMisses:  c.misses.Load(),
		CachedBytes:  c.cached.Load(),
		BusyDuration: time.Duration(c.busyNanos.Load()),
	}
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
)
