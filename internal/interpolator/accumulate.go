package interpolator

import (
	"math"

	"github.com/ivlev/transformtoy/internal/canvas"
	"github.com/ivlev/transformtoy/internal/command"
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Accumulate composes the transform a canvas ends up with after applying
// s in list order, starting from identity. Restore on an empty stack is
// ignored.
func Accumulate(s Step) canvas.Matrix {
	m := canvas.Identity()
	var stack []canvas.Matrix
	for _, b := range s.Steps {
		switch v := b.Value.(type) {
		case command.Translate:
			m = m.Multiply(canvas.Translation(v.DX, v.DY))
		case command.Rotate:
			m = m.Multiply(canvas.Rotation(DegToRad(v.Degrees)))
		case command.Scale:
			m = m.Multiply(canvas.Scaling(v.SX, v.SY))
		case command.Transform:
			m = m.Multiply(canvas.Matrix{A: v.A, B: v.B, C: v.C, D: v.D, E: v.E, F: v.F})
		case command.Save:
			if b.Applied() {
				stack = append(stack, m)
			}
		case command.Restore:
			if b.Applied() && len(stack) > 0 {
				m = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}
	return m
}
