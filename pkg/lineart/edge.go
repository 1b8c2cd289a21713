package lineart

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
)

// EdgeField returns the global gradient magnitude of src.
//
// The horizontal and vertical Sobel responses are computed on two copies of
// src and combined per byte with Magnitude. Alpha is treated like any other
// channel, so an opaque source yields an opaque field.
func EdgeField(src *image.NRGBA) (*image.NRGBA, error) {
	kx := imaging.Convolve3x3(src, sobelHorizontal, nil)
	ky := imaging.Convolve3x3(src, sobelVertical, nil)

	w, h := src.Rect.Dx(), src.Rect.Dy()
	if len(kx.Pix) != w*h*4 {
		return nil, lerrors.New(lerrors.ErrCodeInternal,
			"horizontal gradient has %d samples, want %d", len(kx.Pix), w*h*4)
	}

	mag, err := Magnitude(kx.Pix, ky.Pix)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{Pix: mag, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}, nil
}

// Magnitude combines two gradient sample arrays into sqrt(kx^2 + ky^2) per
// index. The sum is computed in 32 bits and the root is truncated, saturating
// at 255. Both arrays must have the same length.
func Magnitude(kx, ky []uint8) ([]uint8, error) {
	out := make([]uint8, len(kx))
	for i, x := range kx {
		if i >= len(ky) {
			return nil, lerrors.New(lerrors.ErrCodeInternal,
				"no vertical gradient sample at index %d (have %d, want %d)", i, len(ky), len(kx))
		}
		x, y := uint32(x), uint32(ky[i])
		m := math.Sqrt(float64(x*x + y*y))
		out[i] = uint8(min(255, m))
	}
	if len(ky) != len(kx) {
		return nil, lerrors.New(lerrors.ErrCodeInternal,
			"no horizontal gradient sample at index %d (have %d, want %d)", len(kx), len(kx), len(ky))
	}
	return out, nil
}
