package lineart

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
)

// Method selects how the edge signal of a drawing is derived.
type Method uint8

const (
	// Sobel dodges a blurred gradient-magnitude field onto its inverse.
	Sobel Method = iota
	// Gaussian dodges a blurred, inverted copy of the desaturated source onto it.
	Gaussian
)

// Methods lists every method in display order.
var Methods = []Method{Gaussian, Sobel}

// String returns the method name as accepted by ParseMethod.
func (m Method) String() string {
	switch m {
	case Gaussian:
		return "gaussian"
	case Sobel:
		return "sobel"
	default:
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
}

// ParseMethod parses "gaussian" or "sobel" (case-insensitive).
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gaussian":
		return Gaussian, nil
	case "sobel":
		return Sobel, nil
	default:
		return 0, lerrors.New(lerrors.ErrCodeInvalidMethod,
			"invalid method: %q (must be 'gaussian' or 'sobel')", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	switch m {
	case Gaussian, Sobel:
		return []byte(m.String()), nil
	default:
		return nil, lerrors.New(lerrors.ErrCodeInvalidMethod, "invalid method %d", uint8(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Option configures Synthesize.
type Option func(*synthConfig)

type synthConfig struct {
	reference    color.NRGBA
	transparency uint8
	opacity      uint8
	denoise      bool
}

// WithThresholds sets the alpha-keying ramp: colour distances at or below
// transparency become fully transparent, at or above opacity fully opaque.
func WithThresholds(transparency, opacity uint8) Option {
	return func(c *synthConfig) {
		c.transparency = transparency
		c.opacity = opacity
	}
}

// WithReference sets the background colour keyed out to transparency.
func WithReference(ref color.NRGBA) Option {
	return func(c *synthConfig) { c.reference = ref }
}

// WithDenoise smooths the dodge result before keying.
func WithDenoise(enabled bool) Option {
	return func(c *synthConfig) { c.denoise = enabled }
}

// Synthesize renders src as a line drawing with the given method and blur
// radius. src is not modified.
func Synthesize(src *image.NRGBA, m Method, radius int, opts ...Option) (*image.NRGBA, error) {
	cfg := synthConfig{
		reference:    White,
		transparency: DefaultTransparency,
		opacity:      DefaultOpacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		out *image.NRGBA
		err error
	)
	switch m {
	case Gaussian:
		out, err = gaussianDodge(src, radius)
	case Sobel:
		out, err = sobelDodge(src, radius)
	default:
		return nil, lerrors.New(lerrors.ErrCodeInvalidMethod, "invalid method %d", uint8(m))
	}
	if err != nil {
		return nil, err
	}

	if cfg.denoise {
		out = Denoise(out)
	}
	ColorToAlpha(out, cfg.reference, cfg.transparency, cfg.opacity)
	return out, nil
}

func gaussianDodge(src *image.NRGBA, radius int) (*image.NRGBA, error) {
	base := imaging.Clone(src)
	Desaturate(base)
	layer := GaussianBlur(Invert(base), radius)
	if err := Blend(base, layer, BlendDodge); err != nil {
		return nil, err
	}
	return base, nil
}

func sobelDodge(src *image.NRGBA, radius int) (*image.NRGBA, error) {
	edges, err := EdgeField(src)
	if err != nil {
		return nil, err
	}
	Desaturate(edges)
	base := Invert(edges)
	blurred := GaussianBlur(edges, radius)
	if err := Blend(base, blurred, BlendDodge); err != nil {
		return nil, err
	}
	return base, nil
}
