// Package fonts provides the embedded label font used on contact sheets.
//
// The font is the Go Regular TrueType face shipped with golang.org/x/image,
// so no font file has to exist on the host. It is parsed once per process
// and shared read-only by every composer.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// MinSize is the smallest face size handed out by Face, in pixels.
const MinSize = 8

var (
	labelFont     *opentype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// Label returns the parsed label font. The result is cached after the first call.
func Label() (*opentype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// Face creates a face of f at the given pixel size (72 DPI, so points == pixels).
// Sizes below MinSize are raised to MinSize.
func Face(f *opentype.Font, size float64) (font.Face, error) {
	if size < MinSize {
		size = MinSize
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
