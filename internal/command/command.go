// Package command defines the transform command vocabulary shown by the
// visualizer and parses it from free text and from the array form used by
// example catalogues.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names a command. The values are the keywords of the free-text syntax.
type Kind string

const (
	KindTranslate Kind = "translate"
	KindRotate    Kind = "rotate"
	KindScale     Kind = "scale"
	KindTransform Kind = "transform"
	KindFillRect  Kind = "fillRect"
	KindTriangle  Kind = "triangle"
	KindSave      Kind = "save"
	KindRestore   Kind = "restore"
)

// DefaultColor is used by fills that do not name a color.
const DefaultColor = "blue"

// Command is one transformation or drawing instruction.
type Command interface {
	Kind() Kind
	// Args returns the numeric arguments in syntax order.
	Args() []float64
	String() string
	isCommand()
}

type Translate struct{ DX, DY float64 }

type Rotate struct{ Degrees float64 }

type Scale struct{ SX, SY float64 }

// Transform multiplies the current matrix by [A B C D E F] (canvas order).
type Transform struct{ A, B, C, D, E, F float64 }

type FillRect struct {
	X, Y, W, H float64
	Color      string
}

// Triangle draws the fixed 10x20 right triangle with its corner at (X, Y).
type Triangle struct {
	X, Y  float64
	Color string
}

type Save struct{}

type Restore struct{}

func (Translate) Kind() Kind { return KindTranslate }
func (Rotate) Kind() Kind    { return KindRotate }
func (Scale) Kind() Kind     { return KindScale }
func (Transform) Kind() Kind { return KindTransform }
func (FillRect) Kind() Kind  { return KindFillRect }
func (Triangle) Kind() Kind  { return KindTriangle }
func (Save) Kind() Kind      { return KindSave }
func (Restore) Kind() Kind   { return KindRestore }

func (c Translate) Args() []float64 { return []float64{c.DX, c.DY} }
func (c Rotate) Args() []float64    { return []float64{c.Degrees} }
func (c Scale) Args() []float64     { return []float64{c.SX, c.SY} }
func (c Transform) Args() []float64 { return []float64{c.A, c.B, c.C, c.D, c.E, c.F} }
func (c FillRect) Args() []float64  { return []float64{c.X, c.Y, c.W, c.H} }
func (c Triangle) Args() []float64  { return []float64{c.X, c.Y} }
func (Save) Args() []float64        { return nil }
func (Restore) Args() []float64     { return nil }

func (c Translate) String() string { return format(c) }
func (c Rotate) String() string    { return format(c) }
func (c Scale) String() string     { return format(c) }
func (c Transform) String() string { return format(c) }
func (c FillRect) String() string  { return format(c) }
func (c Triangle) String() string  { return format(c) }
func (c Save) String() string      { return format(c) }
func (c Restore) String() string   { return format(c) }

func (Translate) isCommand() {}
func (Rotate) isCommand()    {}
func (Scale) isCommand()     {}
func (Transform) isCommand() {}
func (FillRect) isCommand()  {}
func (Triangle) isCommand()  {}
func (Save) isCommand()      {}
func (Restore) isCommand()   {}

// format renders the free-text form, e.g. "translate(10, -2.5)".
func format(c Command) string {
	args := c.Args()
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = strconv.FormatFloat(a, 'f', -1, 64)
	}
	return fmt.Sprintf("%s(%s)", c.Kind(), strings.Join(parts, ", "))
}

// ColorOf returns the fill color of a drawing command, falling back to
// DefaultColor. ok is false for non-drawing commands.
func ColorOf(c Command) (color string, ok bool) {
	switch v := c.(type) {
	case FillRect:
		color = v.Color
	case Triangle:
		color = v.Color
	default:
		return "", false
	}
	if color == "" {
		color = DefaultColor
	}
	return color, true
}

// IsStackOp reports whether c is a Save or Restore.
func IsStackOp(c Command) bool {
	switch c.(type) {
	case Save, Restore:
		return true
	}
	return false
}

// List is an ordered command sequence. Indices are stable and 0-based.
type List []Command

// HasStackOps reports whether any Save or Restore is present.
func (l List) HasStackOps() bool {
	for _, c := range l {
		if IsStackOp(c) {
			return true
		}
	}
	return false
}

// Reversible reports whether the list may be played in reverse direction.
// Replaying a save/restore history backwards is not defined.
func (l List) Reversible() bool {
	return !l.HasStackOps()
}

// Text renders the list in free-text form, one command per line.
func (l List) Text() string {
	var sb strings.Builder
	for _, c := range l {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary is the status line shown while a program is being edited.
func Summary(l List) string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return "✓ 1 valid command"
	default:
		return fmt.Sprintf("✓ %d valid commands", len(l))
	}
}
