package engine

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/transformtoy/internal/renderer"
)

const (
	panelWidth  = 280
	panelMargin = 12
	lineHeight  = 16
)

// layout places the canvas and the optional trace panel in a frame.
type layout struct {
	frame  image.Rectangle
	canvas image.Rectangle
	panel  image.Rectangle
}

// newLayout keeps both frame dimensions even, which yuv420p requires.
func newLayout(size int, withPanel bool) layout {
	l := layout{canvas: image.Rect(0, 0, size, size)}
	w := size
	if withPanel {
		l.panel = image.Rect(size, 0, size+panelWidth, size)
		w += panelWidth
	}
	l.frame = image.Rect(0, 0, even(w), even(size))
	return l
}

func even(n int) int { return n + n%2 }

var panelBorder = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}

// drawTracePanel writes the pseudocode of tr into r of dst. Active lines are
// red in proportion to their emphasis and drawn bold.
func drawTracePanel(dst *image.RGBA, r image.Rectangle, tr *renderer.Trace) {
	draw.Draw(dst, r, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), image.NewUniform(panelBorder), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	y := r.Min.Y + panelMargin + face.Ascent
	for _, line := range tr.Lines {
		if y > r.Max.Y-panelMargin {
			break
		}
		c := color.RGBA{R: line.Red(), A: 0xff}
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.P(r.Min.X+panelMargin, y),
		}
		d.DrawString(line.Text)
		if line.Current || line.Emphasis > 0 {
			// Faux bold.
			d.Dot = fixed.P(r.Min.X+panelMargin+1, y)
			d.DrawString(line.Text)
		}
		y += lineHeight
	}
}
