package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}

	ctx := context.Background()
	Pipeline().OnImageComplete(ctx, "cat.png", 20, time.Second, nil)
	Cache().OnCacheSet(ctx, "lineart", 1024)
}

func TestRegisterAndReset(t *testing.T) {
	t.Cleanup(Reset)

	c := NewCounters()
	SetPipelineHooks(c)
	SetCacheHooks(c)
	if Pipeline() != PipelineHooks(c) || Cache() != CacheHooks(c) {
		t.Fatal("registered hooks not returned")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(c) {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}

	Reset()
	if Pipeline() == PipelineHooks(c) {
		t.Error("Reset() kept the registered hooks")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnVariantSaved(ctx, "blur_1_darken_0.png")
			c.OnCacheHit(ctx, "lineart")
		}()
	}
	wg.Wait()

	c.OnCacheMiss(ctx, "lineart")
	c.OnCacheSet(ctx, "lineart", 300)
	c.OnImageComplete(ctx, "a.png", 4, 2*time.Second, nil)
	c.OnImageComplete(ctx, "b.png", 0, time.Second, errors.New("decode"))
	c.OnGridComplete(ctx, "summary.png", 0, nil)
	c.OnGridComplete(ctx, "summary.png", 0, errors.New("missing cell"))

	want := Snapshot{
		Images: 2, Failed: 1, Variants: 8, Grids: 1,
		CacheHits: 8, CacheMisses: 1, CachedBytes: 300,
		BusyDuration: 3 * time.Second,
	}
	if got := c.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}
