// Package canvas defines the immediate-mode drawing surface the renderer
// draws on, plus a gg-backed raster implementation and a recording one.
package canvas

import "image/color"

// Surface is the drawing capability the renderer requires from its host:
// a transform stack in the canvas convention and path fills.
type Surface interface {
	Width() int
	Height() int

	// Clear wipes every pixel. The transform is left untouched.
	Clear()

	Translate(dx, dy float64)
	// Rotate rotates by angle radians.
	Rotate(angle float64)
	Scale(sx, sy float64)
	Transform(m Matrix)
	SetTransform(m Matrix)
	GetTransform() Matrix

	// Save pushes the current transform; Restore pops it. Restore on an
	// empty stack is a no-op.
	Save()
	Restore()

	// FillPolygon fills the closed polygon given in user space.
	FillPolygon(c color.Color, pts ...Point) error
}

// state is the transform bookkeeping shared by the Surface implementations.
type state struct {
	matrix Matrix
	stack  []Matrix
}

func newState() state {
	return state{matrix: Identity(), stack: make([]Matrix, 0, 8)}
}

func (s *state) translate(dx, dy float64) { s.matrix = s.matrix.Multiply(Translation(dx, dy)) }
func (s *state) rotate(angle float64)     { s.matrix = s.matrix.Multiply(Rotation(angle)) }
func (s *state) scale(sx, sy float64)     { s.matrix = s.matrix.Multiply(Scaling(sx, sy)) }
func (s *state) transform(m Matrix)       { s.matrix = s.matrix.Multiply(m) }

func (s *state) save() {
	s.stack = append(s.stack, s.matrix)
}

func (s *state) restore() {
	if len(s.stack) == 0 {
		return
	}
	s.matrix = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}
