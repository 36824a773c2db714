package parser

import (
	"errors"
	"fmt"

	tok "github.com/shibukawa/axmac/tokenizer"
)

// Sentinel errors
var (
	// ErrMalformedSyntax is returned when the input does not match the
	// requested shape (scalar, range, array list or array repeat).
	ErrMalformedSyntax = errors.New("malformed macro syntax")
	// ErrMalformedRepeatCount is returned when a repeat-form count is not
	// a statically known non-negative integer.
	ErrMalformedRepeatCount = errors.New("malformed repeat count")
)

// ParseError carries the offending input location alongside the sentinel.
// All errors surface at transformation time; there is no runtime path.
type ParseError struct {
	Err      error // ErrMalformedSyntax or ErrMalformedRepeatCount
	Message  string
	Position tok.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s at line %d, column %d",
		e.Err, e.Message, e.Position.Line, e.Position.Column)
}

// Unwrap exposes the sentinel for errors.Is
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(sentinel error, pos tok.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
}
