package lineart

import (
	"image"
	"image/color"
)

// White is the background colour keyed out of a finished drawing.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Default alpha-keying thresholds: alpha equals the colour distance.
const (
	DefaultTransparency uint8 = 0
	DefaultOpacity      uint8 = 255
)

// distance is the largest per-channel difference between a and b over the
// red and green channels only.
func distance(r, g uint8, ref color.NRGBA) uint8 {
	dr := absDiff(r, ref.R)
	dg := absDiff(g, ref.G)
	return max(dr, dg)
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// keyAlpha maps a colour distance onto [0, 255] with a linear ramp that is 0
// at transparency and 255 at opacity. Equal thresholds give a hard step.
func keyAlpha(d, transparency, opacity uint8) uint8 {
	if opacity == transparency {
		if d >= opacity {
			return 255
		}
		return 0
	}
	a := (float64(d) - float64(transparency)) * 255 / (float64(opacity) - float64(transparency))
	return uint8(max(0, min(255, a)))
}

// ColorToAlpha rewrites the alpha channel of every pixel of img from its
// distance to ref. RGB is left untouched, so applying it twice with the same
// arguments is a no-op the second time.
func ColorToAlpha(img *image.NRGBA, ref color.NRGBA, transparency, opacity uint8) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+3] = keyAlpha(distance(pix[i], pix[i+1], ref), transparency, opacity)
	}
}
