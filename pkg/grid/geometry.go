package grid

import (
	"image"
	"math"

	"github.com/matzehuels/lineart/pkg/sweep"
)

// Spacing multipliers, in cell widths (columns) or cell heights (rows).
const (
	ColumnPitch = 1.2 // horizontal distance between column origins
	RowPitch    = 1.1 // vertical distance between row origins
	LeftMargin  = 1.3 // space reserved for blur labels
	TopMargin   = 0.6 // space reserved for darken labels
)

// Geometry is the layout of a contact sheet.
type Geometry struct {
	CellWidth  int
	CellHeight int
	Rows       int // one per blur radius
	Cols       int // one per darken level
}

// NewGeometry lays out a sheet of p's variants with cells of the given size.
func NewGeometry(cellWidth, cellHeight int, p sweep.Params) Geometry {
	return Geometry{
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Rows:       int(p.BlurNumber),
		Cols:       int(p.DarkenNumber),
	}
}

// Size returns the canvas size.
func (g Geometry) Size() image.Point {
	cw, ch := float64(g.CellWidth), float64(g.CellHeight)
	return image.Point{
		X: int(math.Round(cw*ColumnPitch*float64(g.Cols) + cw*LeftMargin)),
		Y: int(math.Round(ch*RowPitch*float64(g.Rows) + ch*TopMargin)),
	}
}

// ColumnLeft returns the x offset of column col.
func (g Geometry) ColumnLeft(col int) int {
	cw := float64(g.CellWidth)
	return int(math.Round(cw*LeftMargin + float64(col)*cw*ColumnPitch))
}

// RowTop returns the y offset of row row.
func (g Geometry) RowTop(row int) int {
	ch := float64(g.CellHeight)
	return int(math.Round(ch*TopMargin + float64(row)*ch*RowPitch))
}

// Cell returns the rectangle of the cell at (row, col).
func (g Geometry) Cell(row, col int) image.Rectangle {
	origin := image.Pt(g.ColumnLeft(col), g.RowTop(row))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(g.CellWidth, g.CellHeight))}
}

// TextSize returns the label font size in pixels: a third of the cell width,
// capped so the title and column label lines both fit in the top margin.
func (g Geometry) TextSize() float64 {
	return min(float64(g.CellWidth)/3, float64(g.CellHeight)*TopMargin*0.6)
}

// Label anchors. Titles and column labels return a horizontal centre and a
// baseline; row labels return a centre point.

// BlurTitle returns where the "Blur" axis title goes.
func (g Geometry) BlurTitle() (x, baseline float64) {
	return float64(g.CellWidth) * LeftMargin / 2, float64(g.CellHeight) * TopMargin * 0.45
}

// DarkenTitle returns where the "Darken" axis title goes: centred over the columns.
func (g Geometry) DarkenTitle() (x, baseline float64) {
	left := float64(g.ColumnLeft(0))
	right := float64(g.ColumnLeft(g.Cols-1) + g.CellWidth)
	return (left + right) / 2, float64(g.CellHeight) * TopMargin * 0.45
}

// ColumnLabel returns where the darken level of column col goes.
func (g Geometry) ColumnLabel(col int) (x, baseline float64) {
	return float64(g.ColumnLeft(col)) + float64(g.CellWidth)/2, float64(g.CellHeight) * TopMargin * 0.9
}

// RowLabel returns where the blur radius of row row goes.
func (g Geometry) RowLabel(row int) (x, y float64) {
	return float64(g.CellWidth) * LeftMargin / 2, float64(g.RowTop(row)) + float64(g.CellHeight)/2
}
