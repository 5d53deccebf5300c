package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// Matrix is a 2D affine transform in the HTML canvas convention:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// The zero value is not the identity; use Identity.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Point is a 2D point in user or device space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Identity returns the identity matrix [1 0 0 1 0 0].
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns a matrix translating by (dx, dy).
func Translation(dx, dy float64) Matrix {
	return Matrix{A: 1, D: 1, E: dx, F: dy}
}

// Rotation returns a matrix rotating by angle radians (clockwise on a y-down surface).
func Rotation(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Scaling returns a matrix scaling by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Multiply returns m*o: o is applied first, then m, which is what
// CanvasRenderingContext2D.transform does to the current matrix.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Apply maps a point through the matrix.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Approx reports whether every component of m is within eps of o.
func (m Matrix) Approx(o Matrix, eps float64) bool {
	a := m.Components()
	b := o.Components()
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// Components returns [a b c d e f].
func (m Matrix) Components() [6]float64 {
	return [6]float64{m.A, m.B, m.C, m.D, m.E, m.F}
}

// ToGG converts to the gg row-major layout (translation in C and F).
func (m Matrix) ToGG() gg.Matrix {
	return gg.Matrix{
		A: m.A, B: m.C, C: m.E,
		D: m.B, E: m.D, F: m.F,
	}
}

// FromGG converts a gg matrix to the canvas layout.
func FromGG(g gg.Matrix) Matrix {
	return Matrix{A: g.A, B: g.D, C: g.B, D: g.E, E: g.C, F: g.F}
}
