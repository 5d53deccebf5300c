package command

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax         = errors.New("invalid syntax")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArity          = errors.New("wrong number of parameters")
	ErrNumber         = errors.New("invalid number")
)

// ParseError reports a command that could not be parsed. Line is 1-based
// and is zero when the error comes from a single-line Parse.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ArityError reports a command called with the wrong number of parameters.
type ArityError struct {
	Name   string
	Want   int
	Got    int
	Params string
}

func (e *ArityError) Error() string {
	switch {
	case e.Want == 0:
		return fmt.Sprintf("%s requires no parameters, got %d", e.Name, e.Got)
	case e.Want == 1:
		return fmt.Sprintf("%s requires 1 parameter (%s), got %d", e.Name, e.Params, e.Got)
	default:
		return fmt.Sprintf("%s requires %d parameters (%s), got %d", e.Name, e.Want, e.Params, e.Got)
	}
}

func (e *ArityError) Is(target error) bool { return target == ErrArity }

// NumberError reports an argument that is not a real-number literal.
type NumberError struct {
	Token string
	Line  string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("Invalid number: %q in command: %s", e.Token, e.Line)
}

func (e *NumberError) Is(target error) bool { return target == ErrNumber }
