package canvas

import (
	"image/color"
	"math"
	"testing"
)

func TestMatrixMultiplyOrder(t *testing.T) {
	// translate then scale: the scale applies to points first.
	m := Translation(10, 0).Multiply(Scaling(2, 2))
	got := m.Apply(Pt(1, 1))
	if math.Abs(got.X-12) > 1e-9 || math.Abs(got.Y-2) > 1e-9 {
		t.Fatalf("Apply() = %+v, want {12 2}", got)
	}

	m = Scaling(2, 2).Multiply(Translation(10, 0))
	got = m.Apply(Pt(1, 1))
	if math.Abs(got.X-22) > 1e-9 || math.Abs(got.Y-2) > 1e-9 {
		t.Fatalf("Apply() = %+v, want {22 2}", got)
	}
}

func TestRotationIsClockwiseOnYDown(t *testing.T) {
	got := Rotation(math.Pi / 2).Apply(Pt(1, 0))
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Fatalf("Rotation(90°).Apply(1,0) = %+v, want {0 1}", got)
	}
}

func TestGGRoundTrip(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	if got := FromGG(m.ToGG()); got != m {
		t.Fatalf("FromGG(ToGG(m)) = %+v, want %+v", got, m)
	}

	// Both layouts must agree on where a point lands.
	g := m.ToGG()
	p := m.Apply(Pt(7, -3))
	x := g.A*7 + g.B*-3 + g.C
	y := g.D*7 + g.E*-3 + g.F
	if x != p.X || y != p.Y {
		t.Fatalf("gg maps to (%v,%v), canvas maps to %+v", x, y, p)
	}
}

func TestRecorderStack(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Translate(5, 0)
	r.Save()
	r.Scale(3, 3)
	r.Restore()
	r.Restore() // empty stack: no-op

	if got := r.GetTransform(); got != Translation(5, 0) {
		t.Fatalf("GetTransform() = %+v, want translate(5,0)", got)
	}

	if err := r.FillPolygon(color.Black, Pt(0, 0), Pt(1, 0), Pt(1, 1)); err != nil {
		t.Fatalf("FillPolygon() error = %v", err)
	}
	if len(r.Fills) != 1 || r.Fills[0].Points[1] != Pt(6, 0) {
		t.Fatalf("recorded fills = %+v", r.Fills)
	}

	r.Clear()
	if len(r.Fills) != 0 || r.Clears != 1 {
		t.Fatalf("Clear() left %d fills, %d clears", len(r.Fills), r.Clears)
	}
}

func TestParseColor(t *testing.T) {
	testCases := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "blue", want: color.RGBA{0, 0, 255, 255}},
		{in: "Red", want: color.RGBA{255, 0, 0, 255}},
		{in: "#7F0000", want: color.RGBA{127, 0, 0, 255}},
		{in: "#f00", want: color.RGBA{255, 0, 0, 255}},
		{in: "rgb(0, 128, 0)", want: color.RGBA{0, 128, 0, 255}},
		{in: "rgba(0,0,0,0)", want: color.RGBA{0, 0, 0, 0}},
		{in: "#12345", wantErr: true},
		{in: "#zzz", wantErr: true},
		{in: "rgb(1,2)", wantErr: true},
		{in: "rgb(1,2,300)", wantErr: true},
		{in: "notacolor", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := ParseColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) = %v, want error", tc.in, c)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tc.in, err)
			}
			got := color.RGBAModel.Convert(c).(color.RGBA)
			if got != tc.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRasterFillsUnderTransform(t *testing.T) {
	r := NewRaster(40, 40)
	r.Translate(20, 20)
	r.Scale(2, 2)
	if err := r.FillPolygon(color.RGBA{255, 0, 0, 255}, Pt(-5, -5), Pt(5, -5), Pt(5, 5), Pt(-5, 5)); err != nil {
		t.Fatalf("FillPolygon() error = %v", err)
	}

	img := r.Image()
	cr, cg, cb, _ := img.At(20, 20).RGBA()
	if cr>>8 != 255 || cg>>8 != 0 || cb>>8 != 0 {
		t.Fatalf("centre pixel = (%d,%d,%d), want red", cr>>8, cg>>8, cb>>8)
	}
	// (2,2) is outside the 20x20 square centred at (20,20).
	cr, cg, cb, _ = img.At(2, 2).RGBA()
	if cr>>8 != 255 || cg>>8 != 255 || cb>>8 != 255 {
		t.Fatalf("corner pixel = (%d,%d,%d), want white background", cr>>8, cg>>8, cb>>8)
	}

	if got := r.GetTransform(); !got.Approx(Matrix{A: 2, D: 2, E: 20, F: 20}, 1e-9) {
		t.Fatalf("GetTransform() = %+v", got)
	}
}
