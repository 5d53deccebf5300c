package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor understands the subset of CSS colors the examples use:
// named colors, #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r,g,b) and rgba(r,g,b,a).
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty color")
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		for _, r := range hex {
			if !isHexDigit(r) {
				return nil, fmt.Errorf("invalid hex color %q", s)
			}
		}
		return gg.Hex(hex).Color(), nil
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb") {
		return parseRGBFunc(lower)
	}

	if c, ok := colornames.Map[lower]; ok {
		return c, nil
	}
	if lower == "transparent" {
		return color.Transparent, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

func parseRGBFunc(s string) (color.Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	name := s[:open]
	parts := strings.Split(s[open+1:len(s)-1], ",")
	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	if len(parts) != want {
		return nil, fmt.Errorf("%s expects %d components, got %d", name, want, len(parts))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("invalid color component %q in %q", strings.TrimSpace(parts[i]), s)
		}
		ch[i] = uint8(v)
	}
	alpha := uint8(255)
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return nil, fmt.Errorf("invalid alpha %q in %q", strings.TrimSpace(parts[3]), s)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
