package lineart

import "image"

// Darken multiply-blends img with original n times, in place. Each pass
// deepens ink while white stays white. n <= 0 leaves img untouched.
func Darken(img, original *image.NRGBA, n int) error {
	for range max(0, n) {
		if err := Blend(img, original, BlendMultiply); err != nil {
			return err
		}
	}
	return nil
}
