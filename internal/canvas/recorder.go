package canvas

import "image/color"

// Fill is one recorded FillPolygon call. Points are in device space.
type Fill struct {
	Color  color.Color
	Points []Point
	Matrix Matrix
}

// Recorder is a headless Surface: it keeps the transform stack and records
// fills instead of rasterising them.
type Recorder struct {
	width, height int
	st            state
	Fills         []Fill
	Clears        int
}

// NewRecorder creates a recorder reporting the given surface size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height, st: newState()}
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) Clear() {
	r.Fills = r.Fills[:0]
	r.Clears++
}

func (r *Recorder) Translate(dx, dy float64) { r.st.translate(dx, dy) }
func (r *Recorder) Rotate(angle float64)     { r.st.rotate(angle) }
func (r *Recorder) Scale(sx, sy float64)     { r.st.scale(sx, sy) }
func (r *Recorder) Transform(m Matrix)       { r.st.transform(m) }
func (r *Recorder) SetTransform(m Matrix)    { r.st.matrix = m }
func (r *Recorder) GetTransform() Matrix     { return r.st.matrix }
func (r *Recorder) Save()                    { r.st.save() }
func (r *Recorder) Restore()                 { r.st.restore() }

// Depth reports the number of saved transforms.
func (r *Recorder) Depth() int { return len(r.st.stack) }

func (r *Recorder) FillPolygon(c color.Color, pts ...Point) error {
	dev := make([]Point, len(pts))
	for i, p := range pts {
		dev[i] = r.st.matrix.Apply(p)
	}
	r.Fills = append(r.Fills, Fill{Color: c, Points: dev, Matrix: r.st.matrix})
	return nil
}
