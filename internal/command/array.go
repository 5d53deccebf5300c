package command

import (
	"encoding/json"
	"fmt"
)

// arrayArity is the number of numeric arguments of the array form, which
// unlike free text also knows about triangle.
var arrayArity = map[Kind]int{
	KindTranslate: 2,
	KindRotate:    1,
	KindScale:     2,
	KindTransform: 6,
	KindFillRect:  4,
	KindTriangle:  2,
	KindSave:      0,
	KindRestore:   0,
}

// FromArray decodes the catalogue form [name, ...numbers, color?]. A
// trailing color string is accepted for fillRect and triangle only.
func FromArray(raw []any) (Command, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrSyntax)
	}
	name, ok := raw[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: command name %v is not a string", ErrSyntax, raw[0])
	}
	kind := Kind(name)
	want, ok := arrayArity[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	rest := raw[1:]
	color := ""
	if kind == KindFillRect || kind == KindTriangle {
		if n := len(rest); n == want+1 {
			s, ok := rest[n-1].(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s color %v is not a string", ErrSyntax, name, rest[n-1])
			}
			color = s
			rest = rest[:n-1]
		}
	}
	if len(rest) != want {
		return nil, &ArityError{Name: name, Want: want, Got: len(rest)}
	}

	a := make([]float64, len(rest))
	for i, v := range rest {
		f, ok := toFloat(v)
		if !ok {
			return nil, &NumberError{Token: fmt.Sprint(v), Line: fmt.Sprint(raw)}
		}
		a[i] = f
	}

	switch kind {
	case KindTranslate:
		return Translate{DX: a[0], DY: a[1]}, nil
	case KindRotate:
		return Rotate{Degrees: a[0]}, nil
	case KindScale:
		return Scale{SX: a[0], SY: a[1]}, nil
	case KindTransform:
		return Transform{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]}, nil
	case KindFillRect:
		return FillRect{X: a[0], Y: a[1], W: a[2], H: a[3], Color: color}, nil
	case KindTriangle:
		return Triangle{X: a[0], Y: a[1], Color: color}, nil
	case KindSave:
		return Save{}, nil
	default:
		return Restore{}, nil
	}
}

// ToArray is the inverse of FromArray.
func ToArray(c Command) []any {
	out := []any{string(c.Kind())}
	for _, a := range c.Args() {
		out = append(out, a)
	}
	switch v := c.(type) {
	case FillRect:
		if v.Color != "" {
			out = append(out, v.Color)
		}
	case Triangle:
		if v.Color != "" {
			out = append(out, v.Color)
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
