// Package pkg provides the libraries behind the lineart command.
//
// # Overview
//
// lineart renders photos as pencil-style drawings over a grid of blur radii
// and darken levels. The pkg directory is organized as:
//
//  1. [lineart] - pixel filters: edge field, dodge and multiply blends,
//     background keying, darkening and the two drawing methods
//  2. [imageio] - decoding, encoding and area-bounded resizing
//  3. [sweep] - sweep parameters, output naming and the per-image planner
//  4. [grid] - the labelled contact sheet
//  5. [pipeline] - per-file and per-directory orchestration with caching
//  6. [cache], [fonts], [errors], [observability], [buildinfo] - support
//
// # Data flow
//
//	source image
//	     ↓
//	[imageio] decode, downscale to the pixel budget
//	     ↓
//	[lineart] one drawing per blur radius (cached by [cache])
//	     ↓
//	[sweep] darken and save every level
//	     ↓
//	[grid] summary.png
//
// # Quick Start
//
//	f, _ := fonts.Label()
//	runner := pipeline.NewRunner(sweep.DefaultParams(), nil, grid.NewComposer(f, nil), nil)
//	res, err := runner.ProcessFile(ctx, "photo.jpg", "multiple_images")
//
// [lineart]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/lineart
// [imageio]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/imageio
// [sweep]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/sweep
// [grid]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/grid
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/cache
// [fonts]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/fonts
// [errors]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/lineart/pkg/buildinfo
package pkg
