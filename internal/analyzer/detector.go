// Package analyzer inspects rendered frames and reports where paint
// landed, in pixel coordinates.
package analyzer

import "image"

// Block is a connected painted region of a frame
type Block struct {
	Rect   image.Rectangle
	Pixels int // Number of matching pixels inside Rect
}

// Center returns the middle of the block's bounding box
func (b Block) Center() image.Point {
	return image.Point{
		X: b.Rect.Min.X + b.Rect.Dx()/2,
		Y: b.Rect.Min.Y + b.Rect.Dy()/2,
	}
}

// Detector is the interface for frame analysis strategies
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}
