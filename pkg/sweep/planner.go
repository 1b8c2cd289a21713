package sweep

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/lineart/pkg/imageio"
	"github.com/matzehuels/lineart/pkg/lineart"
	"github.com/matzehuels/lineart/pkg/observability"
)

// SynthesizeFunc renders src as a drawing at the given blur radius.
type SynthesizeFunc func(ctx context.Context, src *image.NRGBA, radius int) (*image.NRGBA, error)

// Planner renders every variant of a sweep into one directory.
type Planner struct {
	Params Params
	Logger *log.Logger

	// Synthesize overrides how drawings are produced, e.g. to add caching.
	// If nil, lineart.Synthesize is called with Params.Method.
	Synthesize SynthesizeFunc
}

// NewPlanner creates a planner for p. If logger is nil, log.Default() is used.
func NewPlanner(p Params, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{Params: p, Logger: logger}
}

// Generate writes BlurNumber*DarkenNumber images into dir and returns their
// paths in write order. dir is created if needed and never cleared; files of
// an earlier run with the same names are overwritten.
//
// src is downscaled to the target area first if it exceeds it. Any error
// aborts the rest of the sweep.
func (p *Planner) Generate(ctx context.Context, src *image.NRGBA, dir string) ([]string, error) {
	if err := p.Params.Validate(); err != nil {
		return nil, err
	}
	if err := imageio.EnsureDir(dir); err != nil {
		return nil, err
	}

	src = p.Prepare(src)
	levels := p.Params.DarkenLevels()
	written := make([]string, 0, int(p.Params.BlurNumber)*len(levels))

	for _, radius := range p.Params.BlurRadii() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		start := time.Now()
		original, err := p.synthesize(ctx, src, radius)
		if err != nil {
			return written, err
		}
		p.Logger.Debug("synthesized drawing", "method", p.Params.Method, "radius", radius, "duration", time.Since(start))

		buf := imaging.Clone(original)
		if err := lineart.Darken(buf, original, int(p.Params.MinDarkenNumber)); err != nil {
			return written, err
		}

		for j, level := range levels {
			path, err := Key{Radius: radius, Level: level}.Path(dir)
			if err != nil {
				return written, err
			}
			if err := imageio.Save(buf, path); err != nil {
				return written, err
			}
			written = append(written, path)
			observability.Pipeline().OnVariantSaved(ctx, path)
			p.Logger.Debug("saved variant", "path", path)

			if j < len(levels)-1 {
				if err := lineart.Darken(buf, original, int(p.Params.DarkenStep)); err != nil {
					return written, err
				}
			}
		}
	}
	return written, nil
}

// Prepare downscales src to the planner's target area.
func (p *Planner) Prepare(src *image.NRGBA) *image.NRGBA {
	out := imageio.FitArea(src, p.Params.TargetWidth, p.Params.TargetHeight)
	if out != src {
		p.Logger.Debug("resized source",
			"from", src.Rect.Size(), "to", out.Rect.Size(),
			"budget", uint64(p.Params.TargetWidth)*uint64(p.Params.TargetHeight))
	}
	return out
}

func (p *Planner) synthesize(ctx context.Context, src *image.NRGBA, radius int) (*image.NRGBA, error) {
	if p.Synthesize != nil {
		return p.Synthesize(ctx, src, radius)
	}
	return lineart.Synthesize(src, p.Params.Method, radius, lineart.WithDenoise(p.Params.Denoise))
}
