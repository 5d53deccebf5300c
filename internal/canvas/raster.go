package canvas

import (
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/gogpu/gg"
)

// Raster is a Surface backed by a gg software drawing context.
type Raster struct {
	dc         *gg.Context
	background gg.RGBA
}

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithBackground sets the color Clear paints. The default is opaque white;
// pass color.Transparent to get canvas clearRect semantics.
func WithBackground(c color.Color) RasterOption {
	return func(r *Raster) {
		r.background = gg.FromColor(c)
	}
}

// NewRaster creates a width x height raster surface.
func NewRaster(width, height int, opts ...RasterOption) *Raster {
	r := &Raster{
		dc:         gg.NewContext(width, height),
		background: gg.RGB(1, 1, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Clear()
	return r
}

// SetLogger forwards l to the gg library, which is silent by default.
func SetLogger(l *slog.Logger) {
	gg.SetLogger(l)
}

func (r *Raster) Width() int  { return r.dc.Width() }
func (r *Raster) Height() int { return r.dc.Height() }

func (r *Raster) Clear() {
	r.dc.ClearPath()
	r.dc.ClearWithColor(r.background)
}

func (r *Raster) Translate(dx, dy float64) { r.dc.Translate(dx, dy) }
func (r *Raster) Rotate(angle float64)     { r.dc.Rotate(angle) }
func (r *Raster) Scale(sx, sy float64)     { r.dc.Scale(sx, sy) }
func (r *Raster) Transform(m Matrix)       { r.dc.Transform(m.ToGG()) }
func (r *Raster) SetTransform(m Matrix)    { r.dc.SetTransform(m.ToGG()) }
func (r *Raster) GetTransform() Matrix     { return FromGG(r.dc.GetTransform()) }
func (r *Raster) Save()                    { r.dc.Push() }
func (r *Raster) Restore()                 { r.dc.Pop() }

func (r *Raster) FillPolygon(c color.Color, pts ...Point) error {
	if len(pts) < 3 {
		return nil
	}
	r.dc.SetColor(c)
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
	return r.dc.Fill()
}

// Image returns the current pixels.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the current pixels as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the current pixels to path.
func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}
