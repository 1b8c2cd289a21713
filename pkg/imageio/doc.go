// Package imageio is the pixel-buffer codec used by the lineart pipeline.
//
// Every stage of the pipeline works on *image.NRGBA: 8-bit, non-premultiplied
// RGBA with the origin at (0, 0) and a stride of exactly 4*width, so that
// Pix can be treated as a flat width*height*4 byte array. Open and Decode
// normalize whatever the underlying decoder returns into that shape.
//
// Decoding, encoding and resampling are delegated to
// github.com/disintegration/imaging.
package imageio
