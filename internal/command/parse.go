package command

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

type signature struct {
	arity  int
	params string
	build  func(a []float64) Command
}

// signatures lists what the free-text syntax accepts. triangle is a
// catalogue-only primitive and is deliberately absent.
var signatures = map[string]signature{
	"translate": {2, "x, y", func(a []float64) Command { return Translate{DX: a[0], DY: a[1]} }},
	"scale":     {2, "x, y", func(a []float64) Command { return Scale{SX: a[0], SY: a[1]} }},
	"rotate":    {1, "angle", func(a []float64) Command { return Rotate{Degrees: a[0]} }},
	"fillRect":  {4, "x, y, width, height", func(a []float64) Command { return FillRect{X: a[0], Y: a[1], W: a[2], H: a[3]} }},
	"transform": {6, "a, b, c, d, e, f", func(a []float64) Command {
		return Transform{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]}
	}},
	"save":    {0, "", func([]float64) Command { return Save{} }},
	"restore": {0, "", func([]float64) Command { return Restore{} }},
}

const supported = "translate, scale, rotate, fillRect, transform, save, restore"

// Parse parses a single free-text command such as "rotate(45)".
// Errors are always *ParseError.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	fail := func(err error) (Command, error) {
		return nil, &ParseError{Text: line, Err: err}
	}

	open := strings.IndexByte(line, '(')
	if open <= 0 || !strings.HasSuffix(line, ")") || !isIdent(line[:open]) {
		return fail(fmt.Errorf("%w: %q. Expected format: command(params)", ErrSyntax, line))
	}
	name := line[:open]
	inner := strings.TrimSpace(line[open+1 : len(line)-1])
	if strings.ContainsAny(inner, "()") {
		return fail(fmt.Errorf("%w: %q. Nested parentheses are not allowed", ErrSyntax, line))
	}

	var args []float64
	if inner != "" {
		for _, tok := range strings.Split(inner, ",") {
			v, err := parseNumber(strings.TrimSpace(tok), line)
			if err != nil {
				return fail(err)
			}
			args = append(args, v)
		}
	}

	sig, ok := signatures[name]
	if !ok {
		return fail(fmt.Errorf("%w: %q. Supported: %s", ErrUnknownCommand, name, supported))
	}
	if len(args) != sig.arity {
		return fail(&ArityError{Name: name, Want: sig.arity, Got: len(args), Params: sig.params})
	}
	return sig.build(args), nil
}

// ParseAll parses one command per line, skipping blank lines. It stops at
// the first error, which carries the 1-based line number.
func ParseAll(text string) (List, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	list := List{}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			pe := err.(*ParseError)
			pe.Line = i + 1
			return List{}, pe
		}
		list = append(list, cmd)
	}
	return list, nil
}

// parseNumber accepts a complete real-number literal; trailing garbage,
// NaN and infinities are rejected.
func parseNumber(tok, line string) (float64, error) {
	if tok == "" {
		return 0, &NumberError{Token: tok, Line: line}
	}
	v, n := strconv.ParseFloat([]byte(tok))
	if n != len(tok) || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NumberError{Token: tok, Line: line}
	}
	return v, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
