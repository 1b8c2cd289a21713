// Package lineart turns photographs into transparent line drawings.
//
// A drawing is produced in three steps:
//
//  1. An edge signal is derived from the source, either from the
//     desaturated source itself ([Gaussian]) or from a Sobel gradient
//     magnitude field ([Sobel], see [EdgeField]).
//  2. A blurred, inverted copy of that signal is dodge-blended onto its
//     counterpart, which leaves flat regions white and turns edges into ink.
//  3. The near-white background is keyed out to transparency with
//     [ColorToAlpha].
//
// [Darken] deepens the ink of a finished drawing by repeatedly
// multiply-blending it with itself.
//
// All functions operate on *image.NRGBA buffers whose origin is (0, 0) and
// whose stride is 4*width, as produced by the imageio package.
package lineart
