package lineart

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Directional Sobel kernels, row-major.
var (
	sobelHorizontal = [9]float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
	sobelVertical = [9]float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
	smoothing = [9]float64{
		1, 2, 1,
		2, 4, 2,
		1, 2, 1,
	}
)

// Desaturate replaces the RGB channels of every pixel with its HSL
// lightness, (max+min)/2. Alpha is left untouched.
func Desaturate(img *image.NRGBA) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		c := colorful.Color{
			R: float64(pix[i]) / 255,
			G: float64(pix[i+1]) / 255,
			B: float64(pix[i+2]) / 255,
		}
		_, _, l := c.Hsl()
		v := uint8(math.Round(max(0, min(1, l)) * 255))
		pix[i], pix[i+1], pix[i+2] = v, v, v
	}
}

// Invert returns a copy of img with its RGB channels inverted.
func Invert(img *image.NRGBA) *image.NRGBA {
	return imaging.Invert(img)
}

// GaussianBlur returns a blurred copy of img. The radius is used as the
// standard deviation of the kernel; radii <= 0 return an unblurred copy.
func GaussianBlur(img *image.NRGBA, radius int) *image.NRGBA {
	return imaging.Blur(img, float64(radius))
}

// Denoise returns a copy of img smoothed with a 3x3 binomial kernel.
func Denoise(img *image.NRGBA) *image.NRGBA {
	return imaging.Convolve3x3(img, smoothing, &imaging.ConvolveOptions{Normalize: true})
}
