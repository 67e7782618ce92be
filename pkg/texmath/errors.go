package texmath

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ParseError.
var (
	ErrUnknownCommand       = errors.New("unknown command")
	ErrUnbalancedBraces     = errors.New("unbalanced braces")
	ErrUnbalancedDelimiters = errors.New("unbalanced \\left/\\right")
	ErrMissingArgument      = errors.New("missing argument")
	ErrUnicodeInMath        = errors.New("unicode text in math mode")
	ErrTooDeep              = errors.New("nesting too deep")
)

// ParseError describes where typesetting stopped.
type ParseError struct {
	// Pos is the byte offset into the source.
	Pos int

	// Detail names the offending token, if any.
	Detail string

	Err error
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v %q at position %d", e.Err, e.Detail, e.Pos)
	}
	return fmt.Sprintf("%v at position %d", e.Err, e.Pos)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
