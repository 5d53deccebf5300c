package renderer

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivlev/transformtoy/internal/canvas"
	"github.com/ivlev/transformtoy/internal/command"
	"github.com/ivlev/transformtoy/internal/interpolator"
)

// TraceLine is one line of pseudocode. Fills produce two lines sharing the
// same Index.
type TraceLine struct {
	Index    int
	Text     string
	Emphasis float64
	Current  bool
}

// Red is the red channel used to highlight the line, 0 when inactive.
func (l TraceLine) Red() uint8 {
	if l.Current {
		return 255
	}
	return uint8(math.Floor(255 * l.Emphasis))
}

// Trace is the pseudocode equivalent of a render.
type Trace struct {
	Lines           []TraceLine
	Direction       interpolator.Direction
	ReverseDisabled bool
	// Final is the accumulated user transform, excluding the display
	// transform.
	Final canvas.Matrix
}

func newTrace(step interpolator.Step) *Trace {
	t := &Trace{
		Direction:       step.Direction,
		ReverseDisabled: step.ReverseDisabled,
		Final:           interpolator.Accumulate(step),
	}
	for _, b := range step.Steps {
		for _, text := range lineTexts(b.Value) {
			t.Lines = append(t.Lines, TraceLine{
				Index:    b.Index,
				Text:     text,
				Emphasis: b.Emphasis,
				Current:  b.Current,
			})
		}
	}
	return t
}

func lineTexts(c command.Command) []string {
	switch v := c.(type) {
	case command.Translate:
		return []string{fmt.Sprintf("context.translate(%s,%s);", fixed(v.DX, 1), fixed(v.DY, 1))}
	case command.Rotate:
		return []string{fmt.Sprintf("context.rotate(%s);", fixed(v.Degrees, 1))}
	case command.Scale:
		return []string{fmt.Sprintf("context.scale(%s,%s);", fixed(v.SX, 1), fixed(v.SY, 1))}
	case command.Transform:
		return []string{fmt.Sprintf("context.transform(%s,%s,%s,%s,%s,%s);",
			fixed(v.A, 2), fixed(v.B, 2), fixed(v.C, 2), fixed(v.D, 2), fixed(v.E, 2), fixed(v.F, 2))}
	case command.FillRect:
		color, _ := command.ColorOf(v)
		return []string{
			fmt.Sprintf("context.fillStyle=%q", color),
			fmt.Sprintf("context.fillRect(%s,%s,%s,%s);", short(v.X), short(v.Y), short(v.W), short(v.H)),
		}
	case command.Triangle:
		color, _ := command.ColorOf(v)
		return []string{
			fmt.Sprintf("context.fillStyle=%q", color),
			fmt.Sprintf("triangle(context,%s,%s);", short(v.X), short(v.Y)),
		}
	case command.Save:
		return []string{"context.save();"}
	case command.Restore:
		return []string{"context.restore();"}
	}
	return nil
}

func fixed(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	// -0.0 reads oddly in a trace.
	if strings.Trim(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

func short(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Plain renders the trace without styling, one line per row.
func (t *Trace) Plain() string {
	var sb strings.Builder
	for _, l := range t.Lines {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// HTML renders the trace as bold spans colored by emphasis.
func (t *Trace) HTML() string {
	var sb strings.Builder
	for _, l := range t.Lines {
		style := "font-weight: bold;"
		if l.Current || l.Emphasis > 0 {
			style = fmt.Sprintf("color: rgb(%d, 0, 0); font-weight: bold;", l.Red())
		}
		fmt.Fprintf(&sb, "<span style=%q>%s</span><br/>\n", style, html.EscapeString(l.Text))
	}
	return sb.String()
}

// ANSI renders the trace for a terminal. A nil renderer uses the lipgloss
// default, which follows the detected color profile.
func (t *Trace) ANSI(r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	base := r.NewStyle().Bold(true)

	var sb strings.Builder
	for _, l := range t.Lines {
		style := base
		if l.Current || l.Emphasis > 0 {
			style = base.Foreground(lipgloss.Color(fmt.Sprintf("#%02X0000", l.Red())))
		}
		sb.WriteString(style.Render(l.Text))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TraceCode turns a trace line back into free-text command syntax, e.g.
// "context.rotate(45.0);" becomes "rotate(45.0)". Lines with no free-text
// equivalent come back unchanged apart from the trailing semicolon.
func TraceCode(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, ";")
	return strings.TrimPrefix(line, "context.")
}
