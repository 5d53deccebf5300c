package renderer

import (
	"image/color"

	"github.com/ivlev/transformtoy/internal/canvas"
)

const (
	gridSize      = 50
	gridSpacing   = 10
	gridLineWidth = 0.5
	axisLineWidth = 3
	arrowSize     = 6
	arrowHalf     = 3
	blockSize     = 20
)

// GridStyle parameterizes the coordinate grid decoration.
type GridStyle struct {
	Color color.Color
	// Block fills the reference square centred on the origin when set.
	Block  color.Color
	Arrows bool
}

// DrawGrid draws a grid from -50 to 50 every 10 units with bold axes and
// arrows on +x and +y, in the current user space. Lines are drawn as
// filled quads.
func DrawGrid(s canvas.Surface, style GridStyle) error {
	if style.Block != nil {
		if err := s.FillPolygon(style.Block,
			canvas.Pt(-blockSize, -blockSize),
			canvas.Pt(blockSize, -blockSize),
			canvas.Pt(blockSize, blockSize),
			canvas.Pt(-blockSize, blockSize),
		); err != nil {
			return err
		}
	}

	for i := -gridSize; i <= gridSize; i += gridSpacing {
		pos := float64(i)
		if err := line(s, style.Color, gridLineWidth, pos, -gridSize, pos, gridSize); err != nil {
			return err
		}
		if err := line(s, style.Color, gridLineWidth, -gridSize, pos, gridSize, pos); err != nil {
			return err
		}
	}

	if err := line(s, style.Color, axisLineWidth, 0, -gridSize, 0, gridSize); err != nil {
		return err
	}
	if err := line(s, style.Color, axisLineWidth, -gridSize, 0, gridSize, 0); err != nil {
		return err
	}

	if !style.Arrows {
		return nil
	}
	if err := s.FillPolygon(style.Color,
		canvas.Pt(arrowHalf, gridSize),
		canvas.Pt(0, gridSize+arrowSize),
		canvas.Pt(-arrowHalf, gridSize),
	); err != nil {
		return err
	}
	return s.FillPolygon(style.Color,
		canvas.Pt(gridSize, -arrowHalf),
		canvas.Pt(gridSize+arrowSize, 0),
		canvas.Pt(gridSize, arrowHalf),
	)
}

// line fills the rectangle of the given width around the axis-aligned
// segment (x0,y0)-(x1,y1).
func line(s canvas.Surface, c color.Color, width, x0, y0, x1, y1 float64) error {
	h := width / 2
	if x0 == x1 {
		return s.FillPolygon(c,
			canvas.Pt(x0-h, y0), canvas.Pt(x0+h, y0),
			canvas.Pt(x1+h, y1), canvas.Pt(x1-h, y1),
		)
	}
	return s.FillPolygon(c,
		canvas.Pt(x0, y0-h), canvas.Pt(x1, y1-h),
		canvas.Pt(x1, y1+h), canvas.Pt(x0, y0+h),
	)
}
