package lineart

import (
	"image"

	lerrors "github.com/matzehuels/lineart/pkg/errors"
)

// BlendMode selects how Blend combines two pixels.
type BlendMode uint8

const (
	// BlendMultiply darkens: channel product normalized to 8 bits.
	BlendMultiply BlendMode = iota
	// BlendDodge brightens the base by how far the blend layer departs from black.
	BlendDodge
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendMultiply:
		return "multiply"
	case BlendDodge:
		return "dodge"
	default:
		return "unknown"
	}
}

// Blend combines src into dst in place, pixel by pixel. Only the RGB
// channels are blended; dst keeps its alpha. Both buffers must have the
// same dimensions.
func Blend(dst, src *image.NRGBA, mode BlendMode) error {
	if dst.Rect.Size() != src.Rect.Size() || len(dst.Pix) != len(src.Pix) {
		return lerrors.New(lerrors.ErrCodeInternal,
			"%s blend of mismatched buffers: %v vs %v", mode, dst.Rect.Size(), src.Rect.Size())
	}

	var op func(base, blend uint8) uint8
	switch mode {
	case BlendMultiply:
		op = multiply
	case BlendDodge:
		op = dodge
	default:
		return lerrors.New(lerrors.ErrCodeInternal, "unknown blend mode %d", mode)
	}

	d, s := dst.Pix, src.Pix
	for i := 0; i+3 < len(d); i += 4 {
		d[i] = op(d[i], s[i])
		d[i+1] = op(d[i+1], s[i+1])
		d[i+2] = op(d[i+2], s[i+2])
	}
	return nil
}

func multiply(base, blend uint8) uint8 {
	return uint8(uint32(base) * uint32(blend) / 255)
}

func dodge(base, blend uint8) uint8 {
	if blend == 255 {
		return 255
	}
	return uint8(min(255, uint32(base)*255/(255-uint32(blend))))
}
