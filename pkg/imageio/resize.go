package imageio

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// FitArea downscales img so that its pixel area does not exceed
// targetWidth*targetHeight, preserving the aspect ratio.
//
// Both axes are scaled by sqrt(target/area) and rounded down, so the result
// can be slightly smaller than the target when aspect ratios differ. Images
// already within the budget, and a zero target, return img unchanged.
func FitArea(img *image.NRGBA, targetWidth, targetHeight uint32) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	w2, h2 := FitDimensions(w, h, targetWidth, targetHeight)
	if w2 == w && h2 == h {
		return img
	}
	return imaging.Resize(img, w2, h2, imaging.Lanczos)
}

// FitDimensions computes the dimensions FitArea resizes a w×h image to.
func FitDimensions(w, h int, targetWidth, targetHeight uint32) (int, int) {
	target := uint64(targetWidth) * uint64(targetHeight)
	area := uint64(w) * uint64(h)
	if target == 0 || area <= target {
		return w, h
	}

	scale := math.Sqrt(float64(target) / float64(area))
	nw := max(1, int(math.Floor(float64(w)*scale)))
	nh := max(1, int(math.Floor(float64(h)*scale)))

	// Floor rounding can still overshoot by one row when the float product lands on an edge.
	for uint64(nw)*uint64(nh) > target && (nw > 1 || nh > 1) {
		if nw >= nh {
			nw--
		} else {
			nh--
		}
	}
	return nw, nh
}
