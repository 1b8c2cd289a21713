package grid

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/lineart/pkg/fonts"
	"github.com/matzehuels/lineart/pkg/imageio"
	"github.com/matzehuels/lineart/pkg/observability"
	"github.com/matzehuels/lineart/pkg/sweep"
)

// Axis titles drawn on every sheet.
const (
	BlurTitle   = "Blur"
	DarkenTitle = "Darken"
)

// Composer draws contact sheets. It is safe for concurrent use; the font
// is only read.
type Composer struct {
	Font   *opentype.Font
	Logger *log.Logger
}

// NewComposer creates a composer labelling sheets with f.
// If logger is nil, log.Default() is used.
func NewComposer(f *opentype.Font, logger *log.Logger) *Composer {
	if logger == nil {
		logger = log.Default()
	}
	return &Composer{Font: f, Logger: logger}
}

// Compose renders the sheet for the sweep p stored in dir and saves it as
// summary.png in dir. It returns the path of the sheet.
func (c *Composer) Compose(ctx context.Context, dir string, p sweep.Params) (path string, err error) {
	start := time.Now()
	path = filepath.Join(dir, sweep.SummaryName)
	defer func() {
		observability.Pipeline().OnGridComplete(ctx, path, time.Since(start), err)
	}()

	canvas, err := c.Render(ctx, dir, p)
	if err != nil {
		return "", err
	}
	if err := imageio.Save(canvas, path); err != nil {
		return "", err
	}
	c.Logger.Debug("saved contact sheet", "path", path, "size", canvas.Rect.Size(), "duration", time.Since(start))
	return path, nil
}

// Render draws the sheet for the sweep p stored in dir without saving it.
func (c *Composer) Render(ctx context.Context, dir string, p sweep.Params) (*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	radii, levels := p.BlurRadii(), p.DarkenLevels()

	first, err := c.openCell(dir, sweep.Key{Radius: radii[0], Level: levels[0]})
	if err != nil {
		return nil, err
	}
	g := NewGeometry(first.Rect.Dx(), first.Rect.Dy(), p)

	canvas := image.NewRGBA(image.Rectangle{Max: g.Size()})
	draw.Draw(canvas, canvas.Rect, image.White, image.Point{}, draw.Src)

	face, err := fonts.Face(c.Font, g.TextSize())
	if err != nil {
		return nil, err
	}
	defer face.Close()

	dc := gg.NewContextForRGBA(canvas)
	dc.SetFontFace(face)
	dc.SetColor(color.Black)

	for i, radius := range radii {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i == 0 {
			x, y := g.BlurTitle()
			dc.DrawStringAnchored(BlurTitle, x, y, 0.5, 0)
			x, y = g.DarkenTitle()
			dc.DrawStringAnchored(DarkenTitle, x, y, 0.5, 0)
		}

		for j, level := range levels {
			cell := first
			if i > 0 || j > 0 {
				if cell, err = c.openCell(dir, sweep.Key{Radius: radius, Level: level}); err != nil {
					return nil, err
				}
			}
			r := g.Cell(i, j)
			draw.Draw(canvas, image.Rectangle{Min: r.Min, Max: r.Min.Add(cell.Rect.Size())}, cell, image.Point{}, draw.Src)

			if i == 0 {
				x, y := g.ColumnLabel(j)
				dc.DrawStringAnchored(strconv.Itoa(level), x, y, 0.5, 0)
			}
		}

		x, y := g.RowLabel(i)
		dc.DrawStringAnchored(strconv.Itoa(radius), x, y, 0.5, 0.35)
	}
	return canvas, nil
}

func (c *Composer) openCell(dir string, k sweep.Key) (*image.NRGBA, error) {
	path, err := k.Path(dir)
	if err != nil {
		return nil, err
	}
	return imageio.Open(path)
}
