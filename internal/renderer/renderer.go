// Package renderer draws a command list at a given progress onto a
// canvas.Surface and produces the pseudocode trace shown next to it.
package renderer

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/ivlev/transformtoy/internal/canvas"
	"github.com/ivlev/transformtoy/internal/command"
	"github.com/ivlev/transformtoy/internal/interpolator"
)

const (
	DefaultScale       = 2.0
	DefaultBeforeColor = "black"
	DefaultAfterColor  = "#7F0000"

	triangleWidth  = 10
	triangleHeight = 20
)

// Options control the decorations around the transformed drawing.
type Options struct {
	// Scale is the display scale applied after centring the origin.
	Scale float64
	// ShowBefore draws the untransformed grid first.
	ShowBefore bool
	// ShowAfter draws the grid again under the final transform.
	ShowAfter   bool
	BeforeColor string
	AfterColor  string
	// BeforeBlock, when set, fills the reference square under the
	// untransformed grid with that color.
	BeforeBlock string
	Logger      *slog.Logger
}

// DefaultOptions returns the options used by the visualizer.
func DefaultOptions() Options {
	return Options{
		Scale:       DefaultScale,
		ShowBefore:  true,
		ShowAfter:   true,
		BeforeColor: DefaultBeforeColor,
		AfterColor:  DefaultAfterColor,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Render clears s and draws list at progress. The surface transform is
// back where it started when Render returns.
func Render(s canvas.Surface, list command.List, progress float64, dir interpolator.Direction, opts Options) (*Trace, error) {
	if opts.Scale == 0 {
		opts.Scale = DefaultScale
	}
	log := opts.logger()

	s.Clear()
	s.Save()
	defer s.Restore()

	s.Translate(float64(s.Width())/2, float64(s.Height())/2)
	s.Scale(opts.Scale, opts.Scale)

	if opts.ShowBefore {
		style := GridStyle{Color: parseColor(opts.BeforeColor, DefaultBeforeColor, log), Arrows: true}
		if opts.BeforeBlock != "" {
			style.Block = parseColor(opts.BeforeBlock, command.DefaultColor, log)
		}
		if err := DrawGrid(s, style); err != nil {
			return nil, fmt.Errorf("draw before grid: %w", err)
		}
	}

	step := interpolator.BlendAt(list, progress, dir)
	if step.ReverseDisabled {
		log.Debug("reverse direction disabled for list with save/restore")
	}

	// save/restore keep their own stack so a restore never pops the
	// display transform pushed above.
	var stack []canvas.Matrix
	for _, b := range step.Steps {
		if err := apply(s, b, &stack, log); err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", b.Index, b.Command, err)
		}
	}

	if opts.ShowAfter {
		style := GridStyle{Color: parseColor(opts.AfterColor, DefaultAfterColor, log), Arrows: true}
		if err := DrawGrid(s, style); err != nil {
			return nil, fmt.Errorf("draw after grid: %w", err)
		}
	}

	return newTrace(step), nil
}

func apply(s canvas.Surface, b interpolator.Blended, stack *[]canvas.Matrix, log *slog.Logger) error {
	switch v := b.Value.(type) {
	case command.Translate:
		s.Translate(v.DX, v.DY)
	case command.Rotate:
		s.Rotate(interpolator.DegToRad(v.Degrees))
	case command.Scale:
		s.Scale(v.SX, v.SY)
	case command.Transform:
		s.Transform(canvas.Matrix{A: v.A, B: v.B, C: v.C, D: v.D, E: v.E, F: v.F})
	case command.FillRect:
		if !b.Applied() {
			return nil
		}
		c := fillColor(v, log)
		return s.FillPolygon(c,
			canvas.Pt(v.X, v.Y),
			canvas.Pt(v.X, v.Y+v.H),
			canvas.Pt(v.X+v.W, v.Y+v.H),
			canvas.Pt(v.X+v.W, v.Y),
		)
	case command.Triangle:
		if !b.Applied() {
			return nil
		}
		c := fillColor(v, log)
		return s.FillPolygon(c,
			canvas.Pt(v.X, v.Y),
			canvas.Pt(v.X+triangleWidth, v.Y),
			canvas.Pt(v.X, v.Y+triangleHeight),
		)
	case command.Save:
		if b.Applied() {
			*stack = append(*stack, s.GetTransform())
		}
	case command.Restore:
		if b.Applied() && len(*stack) > 0 {
			s.SetTransform((*stack)[len(*stack)-1])
			*stack = (*stack)[:len(*stack)-1]
		}
	default:
		log.Warn("skipping unsupported command", "index", b.Index, "command", fmt.Sprint(b.Command))
	}
	return nil
}

func fillColor(c command.Command, log *slog.Logger) color.Color {
	name, _ := command.ColorOf(c)
	return parseColor(name, "black", log)
}

// parseColor falls back to fallback when s is not a color the surface
// understands.
func parseColor(s, fallback string, log *slog.Logger) color.Color {
	c, err := canvas.ParseColor(s)
	if err == nil {
		return c
	}
	log.Warn("invalid color, using fallback", "color", s, "fallback", fallback, "err", err)
	c, _ = canvas.ParseColor(fallback)
	return c
}
