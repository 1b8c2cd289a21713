// Package grid assembles the images of a sweep into one labelled contact sheet.
//
// Rows are blur radii and columns are darken levels. The canvas reserves a
// left margin of 1.3 cell widths for the blur labels and a top margin of 0.6
// cell heights for the darken labels; cells are spaced 1.2 widths apart
// horizontally and 1.1 heights apart vertically.
package grid
