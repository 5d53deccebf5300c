package analyzer

import (
	"fmt"
	"strings"

	"github.com/ivlev/transformtoy/internal/canvas"
)

// NewDetector creates a detector from a variant name: "ink" (the default)
// or "color:<css color>", e.g. "color:#ff0000".
func NewDetector(variant string) (Detector, error) {
	switch {
	case variant == "ink" || variant == "":
		return NewInkDetector(), nil
	case strings.HasPrefix(variant, "color:"):
		c, err := canvas.ParseColor(strings.TrimPrefix(variant, "color:"))
		if err != nil {
			return nil, fmt.Errorf("color detector: %w", err)
		}
		return NewColorDetector(c), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
