package analyzer

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
)

func newFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func paint(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func TestColorDetector(t *testing.T) {
	img := newFrame(200, 200)
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	paint(img, image.Rect(50, 50, 150, 150), red)
	paint(img, image.Rect(10, 10, 20, 20), red)
	paint(img, image.Rect(160, 160, 190, 190), blue)

	detector := NewColorDetector(red)
	blocks, err := detector.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if len(blocks) != 2 {
		t.Fatalf("Expected 2 red blocks, got %d: %v", len(blocks), blocks)
	}

	if blocks[0].Rect != image.Rect(50, 50, 150, 150) {
		t.Errorf("Largest block = %v, want the 100x100 square", blocks[0].Rect)
	}
	if blocks[0].Pixels != 100*100 {
		t.Errorf("Pixels = %d, want %d", blocks[0].Pixels, 100*100)
	}
	if c := blocks[0].Center(); c != (image.Point{X: 100, Y: 100}) {
		t.Errorf("Center = %v", c)
	}

	for i, b := range blocks {
		t.Logf("Block %d: %v (%d px)", i, b.Rect, b.Pixels)
	}
}

func TestInkDetectorMergesNearbyStrokes(t *testing.T) {
	img := newFrame(100, 100)
	black := color.RGBA{A: 255}
	// Two bars one pixel apart merge; the far one stays separate.
	paint(img, image.Rect(10, 10, 40, 14), black)
	paint(img, image.Rect(10, 15, 40, 19), black)
	paint(img, image.Rect(70, 70, 80, 80), black)

	blocks, err := NewInkDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 regions, got %d: %v", len(blocks), blocks)
	}
	if blocks[0].Pixels != 2*30*4 {
		t.Errorf("Pixels = %d, want only painted pixels counted", blocks[0].Pixels)
	}
}

func TestCentroid(t *testing.T) {
	img := newFrame(40, 40)
	green := color.RGBA{G: 128, A: 255}
	paint(img, image.Rect(10, 20, 20, 30), green)

	x, y, n, ok := Centroid(img, green, 0)
	if !ok || n != 100 {
		t.Fatalf("Centroid() count = %d ok=%v, want 100 pixels", n, ok)
	}
	if math.Abs(x-15) > 1e-9 || math.Abs(y-25) > 1e-9 {
		t.Errorf("Centroid() = (%v, %v), want (15, 25)", x, y)
	}

	if _, _, _, ok := Centroid(img, color.RGBA{R: 1, A: 255}, 0); ok {
		t.Error("Expected no match for an absent color")
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"ink", false},
		{"", false}, // default
		{"color:red", false},
		{"color:#00ff00", false},
		{"color:nope", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if detector == nil {
					t.Error("Expected detector, got nil")
				}
			}
		})
	}
}
