// Package pipeline drives sweeps over source images.
//
// A [Runner] ties the other packages together: it loads a source, renders
// every variant of the sweep with [sweep.Planner], routing synthesis through
// a [cache.Cache], and writes the contact sheet with [grid.Composer].
//
// # Usage
//
//	runner := pipeline.NewRunner(params, cache, composer, logger)
//	res, err := runner.ProcessFile(ctx, "photos/cat.png", "multiple_images")
//
// Directory mode processes every image in a folder. Failures are reported
// per image and never stop the remaining images:
//
//	runner.Jobs = 4
//	results, err := runner.ProcessDir(ctx, "photos", "multiple_images")
//	ok, failed := pipeline.Summarize(results)
package pipeline

import (
	"time"
)

// DefaultJobs is the number of images processed at once in directory mode.
const DefaultJobs = 1

// Result describes the outcome for one source image.
type Result struct {
	Source   string        // source image path
	Dir      string        // output directory of the sweep
	Variants []string      // written variant paths, in write order
	Summary  string        // contact sheet path, empty when skipped
	Duration time.Duration // wall time spent on the image

	// Cache hit/miss counters for synthesized drawings.
	CacheHits   int
	CacheMisses int

	Err error // nil on success
}

// OK reports whether the image was processed without error.
func (r *Result) OK() bool { return r != nil && r.Err == nil }

// Summarize counts successful and failed results.
func Summarize(results []*Result) (ok, failed int) {
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.OK() {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}
