package analyzer

import (
	"image"
	"image/color"
)

// ColorDetector finds regions painted in one specific color
type ColorDetector struct {
	Target    color.Color
	Tolerance int // Largest per-channel difference still counted as a match
	MinArea   int // Minimum number of pixels per region
}

// NewColorDetector creates a detector for target with default settings
func NewColorDetector(target color.Color) *ColorDetector {
	return &ColorDetector{
		Target:    target,
		Tolerance: 8,
		MinArea:   4,
	}
}

// Detect returns the regions painted in the target color, largest first
func (d *ColorDetector) Detect(img image.Image) ([]Block, error) {
	m := mask(img, func(c color.Color) bool {
		return distance(c, d.Target) <= d.Tolerance
	})
	return components(m, nil, d.MinArea), nil
}

// Centroid returns the mean position of the pixels matching target and how
// many there were. ok is false when nothing matched.
func Centroid(img image.Image, target color.Color, tolerance int) (x, y float64, count int, ok bool) {
	bounds := img.Bounds()
	var sumX, sumY float64

	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			if distance(img.At(px, py), target) <= tolerance {
				sumX += float64(px) + 0.5
				sumY += float64(py) + 0.5
				count++
			}
		}
	}

	if count == 0 {
		return 0, 0, 0, false
	}
	return sumX / float64(count), sumY / float64(count), count, true
}
