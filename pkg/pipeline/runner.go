package pipeline

import (
	"context"
	"image"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lineart/pkg/cache"
	"github.com/matzehuels/lineart/pkg/grid"
	"github.com/matzehuels/lineart/pkg/imageio"
	"github.com/matzehuels/lineart/pkg/lineart"
	"github.com/matzehuels/lineart/pkg/observability"
	"github.com/matzehuels/lineart/pkg/sweep"
)

// cacheKeyType labels lineart entries in cache hooks.
const cacheKeyType = "lineart"

// Runner processes source images with one set of sweep parameters.
//
// Runner holds no per-image state, so ProcessFile may be called from
// several goroutines at once.
type Runner struct {
	Params sweep.Params
	Cache  cache.Cache
	Logger *log.Logger

	// Composer draws the contact sheet. If nil, no sheet is written.
	Composer *grid.Composer

	// Jobs bounds concurrent images in ProcessDir. Values below 1 mean 1.
	Jobs int

	// RunID identifies this run in logs.
	RunID string
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default() is used. A fresh run ID is attached to it.
func NewRunner(p sweep.Params, c cache.Cache, composer *grid.Composer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	runID := uuid.NewString()
	return &Runner{
		Params:   p,
		Cache:    c,
		Logger:   logger.With("run", runID[:8]),
		Composer: composer,
		Jobs:     DefaultJobs,
		RunID:    runID,
	}
}

// ProcessFile renders the sweep of the image at path into
// <outRoot>/<stem of path>/ and, with a composer set, its contact sheet.
// The returned Result is never nil; its Err equals the returned error.
func (r *Runner) ProcessFile(ctx context.Context, path, outRoot string) (res *Result, err error) {
	start := time.Now()
	res = &Result{Source: path}
	logger := r.Logger.With("source", path)

	observability.Pipeline().OnImageStart(ctx, path)
	defer func() {
		res.Duration = time.Since(start)
		res.Err = err
		observability.Pipeline().OnImageComplete(ctx, path, len(res.Variants), res.Duration, err)
	}()

	if err := r.Params.Validate(); err != nil {
		return res, err
	}
	dir, err := sweep.OutputDir(outRoot, path)
	if err != nil {
		return res, err
	}
	res.Dir = dir

	src, data, err := imageio.Load(path)
	if err != nil {
		return res, err
	}
	logger.Debug("loaded source", "size", src.Rect.Size())

	var hits, misses atomic.Int32
	planner := sweep.NewPlanner(r.Params, logger)
	planner.Synthesize = r.cachedSynthesize(cache.Hash(data), logger, &hits, &misses)

	res.Variants, err = planner.Generate(ctx, src, dir)
	res.CacheHits, res.CacheMisses = int(hits.Load()), int(misses.Load())
	if err != nil {
		return res, err
	}

	if r.Composer != nil {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if res.Summary, err = r.Composer.Compose(ctx, dir, r.Params); err != nil {
			return res, err
		}
	}

	logger.Info("processed image",
		"dir", dir,
		"variants", len(res.Variants),
		"cache_hits", res.CacheHits,
		"duration", time.Since(start))
	return res, nil
}

// ProcessDir runs ProcessFile for every image directly inside dir, at most
// Jobs at a time. Images that share an output directory (cat.png, cat.jpg)
// run one after another in sorted order, so the last one's files win.
// A failing image is logged and does not affect the others.
// The error is non-nil only if dir cannot be listed or ctx was cancelled;
// per-image errors are in the results, which follow the sorted file order.
func (r *Runner) ProcessDir(ctx context.Context, dir, outRoot string) ([]*Result, error) {
	paths, err := sweep.ListImages(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		r.Logger.Warn("no images found", "dir", dir)
		return nil, nil
	}
	r.Logger.Info("processing directory", "dir", dir, "images", len(paths), "jobs", r.jobs())

	results := make([]*Result, len(paths))
	var g errgroup.Group
	g.SetLimit(r.jobs())
	for _, group := range groupByOutputDir(paths, outRoot) {
		if ctx.Err() != nil {
			break
		}
		if len(group) > 1 {
			r.Logger.Warn("images share an output directory", "first", paths[group[0]], "count", len(group))
		}
		g.Go(func() error {
			for _, i := range group {
				res, err := r.ProcessFile(ctx, paths[i], outRoot)
				results[i] = res
				if err != nil {
					r.Logger.Error("image failed", "source", paths[i], "err", err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// groupByOutputDir returns indexes into paths grouped by output directory,
// in order of first appearance. Directories are compared case-insensitively
// to cover case-folding file systems. A path without a valid output
// directory gets a group of its own and fails in ProcessFile.
func groupByOutputDir(paths []string, outRoot string) [][]int {
	var groups [][]int
	seen := make(map[string]int)
	for i, path := range paths {
		dir, err := sweep.OutputDir(outRoot, path)
		if err != nil {
			groups = append(groups, []int{i})
			continue
		}
		key := strings.ToLower(dir)
		if g, ok := seen[key]; ok {
			groups[g] = append(groups[g], i)
			continue
		}
		seen[key] = len(groups)
		groups = append(groups, []int{i})
	}
	return groups
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) jobs() int {
	if r.Jobs < 1 {
		return 1
	}
	return r.Jobs
}

// cachedSynthesize returns a synthesizer that looks drawings up by source
// hash and radius before rendering them. Cache failures are logged and
// fall back to rendering.
func (r *Runner) cachedSynthesize(sourceHash string, logger *log.Logger, hits, misses *atomic.Int32) sweep.SynthesizeFunc {
	p := r.Params
	return func(ctx context.Context, src *image.NRGBA, radius int) (*image.NRGBA, error) {
		key := cache.LineartKey(sourceHash, cache.LineartKeyOpts{
			Method:       p.Method.String(),
			Radius:       radius,
			TargetWidth:  p.TargetWidth,
			TargetHeight: p.TargetHeight,
			Denoise:      p.Denoise,
		})

		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			logger.Warn("cache read failed", "radius", radius, "err", err)
		} else if hit {
			img, err := imageio.Decode(data)
			if err == nil && img.Rect.Size() == src.Rect.Size() {
				hits.Add(1)
				observability.Cache().OnCacheHit(ctx, cacheKeyType)
				logger.Debug("cache hit", "radius", radius)
				return img, nil
			}
			logger.Warn("discarding unreadable cache entry", "radius", radius, "err", err)
		}
		misses.Add(1)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)

		img, err := lineart.Synthesize(src, p.Method, radius, lineart.WithDenoise(p.Denoise))
		if err != nil {
			return nil, err
		}

		data, err := imageio.Encode(img)
		if err == nil {
			err = r.Cache.Set(ctx, key, data)
		}
		if err != nil {
			logger.Warn("cache write failed", "radius", radius, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
		return img, nil
	}
}
