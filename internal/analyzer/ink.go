package analyzer

import (
	"image"
	"image/color"
)

// InkDetector finds everything drawn over a plain background. Nearby
// strokes are merged so a grid and its arrows come back as one region.
type InkDetector struct {
	Background color.Color
	Tolerance  int
	MinArea    int
	MergeGap   int // Dilation kernel size; 0 disables merging
}

// NewInkDetector creates an ink detector for a white background
func NewInkDetector() *InkDetector {
	return &InkDetector{
		Background: color.White,
		Tolerance:  16,
		MinArea:    16,
		MergeGap:   3,
	}
}

// Detect returns the painted regions, largest first
func (d *InkDetector) Detect(img image.Image) ([]Block, error) {
	m := mask(img, func(c color.Color) bool {
		return distance(c, d.Background) > d.Tolerance
	})
	grouped := m
	if d.MergeGap > 1 {
		grouped = dilate(m, d.MergeGap, 1)
	}
	return components(grouped, m, d.MinArea), nil
}
