// Package interpolator maps a progress value onto partially applied
// commands and provides the easing math shared by playback and export.
package interpolator

import (
	"math"

	"github.com/ivlev/transformtoy/internal/command"
)

// Direction selects how progress is read. Reverse counts from the end of
// the list.
type Direction int

const (
	Forward Direction = 1
	Reverse Direction = -1
)

// Normalize maps any negative value to Reverse and anything else to Forward.
func Normalize(d int) Direction {
	if d < 0 {
		return Reverse
	}
	return Forward
}

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// CurrentEpsilon is the distance under which a command counts as current.
const CurrentEpsilon = 0.001

// Blended is one command at a given progress.
type Blended struct {
	Index   int
	Amt     float64
	Command command.Command
	// Value is Command with its arguments scaled by Amt.
	Value    command.Command
	Emphasis float64
	Current  bool
}

// Applied reports whether the command has started.
func (b Blended) Applied() bool { return b.Amt > 0 }

// Step is the whole list evaluated at one progress value, in list order.
type Step struct {
	Steps     []Blended
	Direction Direction
	// ReverseDisabled is set when Reverse was requested but the list holds
	// save or restore commands; Direction is then Forward.
	ReverseDisabled bool
	Progress        float64
	Effective       float64
}

// BlendAt evaluates list at progress p. Commands are always returned in
// ascending index order; direction only changes how much each one is
// applied.
func BlendAt(list command.List, p float64, dir Direction) Step {
	n := len(list)
	p = clamp(p, 0, float64(n))

	st := Step{Direction: Forward, Progress: p, Effective: p}
	if dir == Reverse {
		if list.Reversible() {
			st.Direction = Reverse
			st.Effective = float64(n) - p
		} else {
			st.ReverseDisabled = true
		}
	}

	st.Steps = make([]Blended, n)
	for i, c := range list {
		// position is where the command sits along the effective axis.
		position := i
		if st.Direction == Reverse {
			position = n - 1 - i
		}
		amt := clamp(st.Effective-float64(position), 0, 1)
		emphasis, current := Emphasis(st.Effective, position)
		st.Steps[i] = Blended{
			Index:    i,
			Amt:      amt,
			Command:  c,
			Value:    BlendValue(c, amt),
			Emphasis: emphasis,
			Current:  current,
		}
	}
	return st
}

// Amounts returns the blend factor of every command.
func (s Step) Amounts() []float64 {
	out := make([]float64, len(s.Steps))
	for i, b := range s.Steps {
		out[i] = b.Amt
	}
	return out
}

// Emphasis is the highlight ramp for the command at position along the
// effective axis. A command is current when the play head sits exactly on
// its completion point and fades out linearly within one step of it.
func Emphasis(effective float64, position int) (float64, bool) {
	distance := math.Abs(effective - float64(position+1))
	switch {
	case distance < CurrentEpsilon:
		return 1, true
	case distance < 1:
		return 1 - distance, false
	default:
		return 0, false
	}
}

// BlendValue returns c partially applied by amt. Fills and stack commands
// are binary and come back unchanged; callers check amt > 0.
func BlendValue(c command.Command, amt float64) command.Command {
	switch v := c.(type) {
	case command.Translate:
		return command.Translate{DX: v.DX * amt, DY: v.DY * amt}
	case command.Rotate:
		return command.Rotate{Degrees: v.Degrees * amt}
	case command.Scale:
		return command.Scale{SX: amt*v.SX + (1 - amt), SY: amt*v.SY + (1 - amt)}
	case command.Transform:
		return command.Transform{
			A: Lerp(1, v.A, amt),
			B: Lerp(0, v.B, amt),
			C: Lerp(0, v.C, amt),
			D: Lerp(1, v.D, amt),
			E: Lerp(0, v.E, amt),
			F: Lerp(0, v.F, amt),
		}
	default:
		return c
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
