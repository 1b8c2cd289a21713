package sweep

import (
	"fmt"
	"path/filepath"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
	"github.com/matzehuels/lineart/pkg/lineart"
)

// File names written into an output directory.
const (
	Ext         = ".png"
	SummaryName = "summary" + Ext
)

// Default sweep values.
const (
	DefaultMinBlurRadius   = 1
	DefaultBlurStep        = 1
	DefaultBlurNumber      = 5
	DefaultMinDarkenNumber = 0
	DefaultDarkenStep      = 1
	DefaultDarkenNumber    = 4
	DefaultMethod          = lineart.Sobel
)

// Params describes one sweep.
type Params struct {
	MinBlurRadius   int32          `toml:"min_blur_radius"`
	BlurStep        int32          `toml:"blur_step"`
	BlurNumber      uint8          `toml:"blur_number"`
	MinDarkenNumber uint8          `toml:"min_darken_number"`
	DarkenStep      uint8          `toml:"darken_step"`
	DarkenNumber    uint8          `toml:"darken_number"`
	Method          lineart.Method `toml:"method"`

	// TargetWidth × TargetHeight is the pixel-area budget for sources.
	// Larger sources are downscaled before synthesis; 0 disables resizing.
	TargetWidth  uint32 `toml:"target_width"`
	TargetHeight uint32 `toml:"target_height"`

	// Denoise smooths each drawing before its background is keyed out.
	Denoise bool `toml:"denoise"`
}

// DefaultParams returns the default sweep: 5 blur radii from 1, 4 darken
// levels from 0, Sobel method, no resizing.
func DefaultParams() Params {
	return Params{
		MinBlurRadius:   DefaultMinBlurRadius,
		BlurStep:        DefaultBlurStep,
		BlurNumber:      DefaultBlurNumber,
		MinDarkenNumber: DefaultMinDarkenNumber,
		DarkenStep:      DefaultDarkenStep,
		DarkenNumber:    DefaultDarkenNumber,
		Method:          DefaultMethod,
	}
}

// Validate checks that the sweep is non-empty and every blur radius is usable.
func (p Params) Validate() error {
	if p.BlurNumber == 0 {
		return lerrors.New(lerrors.ErrCodeInvalidInput, "blur count must be at least 1")
	}
	if p.DarkenNumber == 0 {
		return lerrors.New(lerrors.ErrCodeInvalidInput, "darken count must be at least 1")
	}
	if _, err := p.Method.MarshalText(); err != nil {
		return err
	}
	radii := p.BlurRadii()
	for _, r := range radii {
		if r < 0 {
			return lerrors.New(lerrors.ErrCodeInvalidInput,
				"blur radius %d is negative (min %d, step %d, count %d)",
				r, p.MinBlurRadius, p.BlurStep, p.BlurNumber)
		}
	}
	return nil
}

// BlurRadii returns MinBlurRadius + i*BlurStep for i in [0, BlurNumber).
func (p Params) BlurRadii() []int {
	radii := make([]int, p.BlurNumber)
	for i := range radii {
		radii[i] = int(p.MinBlurRadius) + i*int(p.BlurStep)
	}
	return radii
}

// DarkenLevels returns MinDarkenNumber + j*DarkenStep for j in [0, DarkenNumber).
func (p Params) DarkenLevels() []int {
	levels := make([]int, p.DarkenNumber)
	for j := range levels {
		levels[j] = int(p.MinDarkenNumber) + j*int(p.DarkenStep)
	}
	return levels
}

// Keys returns every variant of the sweep, blur-major.
func (p Params) Keys() []Key {
	radii, levels := p.BlurRadii(), p.DarkenLevels()
	keys := make([]Key, 0, len(radii)*len(levels))
	for _, r := range radii {
		for _, l := range levels {
			keys = append(keys, Key{Radius: r, Level: l})
		}
	}
	return keys
}

// Key identifies one output image of a sweep.
type Key struct {
	Radius int // blur radius
	Level  int // darken level
}

// Name returns the file stem for the variant, e.g. "blur_3_darken_1".
func (k Key) Name() string {
	return fmt.Sprintf("blur_%d_darken_%d", k.Radius, k.Level)
}

// FileName returns the file name for the variant, e.g. "blur_3_darken_1.png".
func (k Key) FileName() string {
	return k.Name() + Ext
}

// Path joins the variant's file name onto dir.
func (k Key) Path(dir string) (string, error) {
	path := filepath.Join(dir, k.FileName())
	if err := lerrors.ValidatePath(path); err != nil {
		return "", err
	}
	return path, nil
}

// OutputDir returns the directory under root that holds the sweep of source.
// It is named after the file stem of source.
func OutputDir(root, source string) (string, error) {
	stem, err := lerrors.Stem(source)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, stem)
	if err := lerrors.ValidatePath(dir); err != nil {
		return "", err
	}
	return dir, nil
}
