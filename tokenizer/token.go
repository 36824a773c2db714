package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
)

// TokenizeError attaches the source position to a tokenizer sentinel
type TokenizeError struct {
	Err      error
	Position Position
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%v at line %d, column %d", e.Err, e.Position.Line, e.Position.Column)
}

// Unwrap exposes the sentinel for errors.Is
func (e *TokenizeError) Unwrap() error {
	return e.Err
}

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	IDENTIFIER // axis names and any other identifiers
	NUMBER     // numeric literals
	STRING     // string literals ('text', "text")

	// Delimiters
	OPENED_PARENS  // (
	CLOSED_PARENS  // )
	OPENED_BRACKET // [
	CLOSED_BRACKET // ]
	COMMA          // ,
	SEMICOLON      // ;

	// Range operators
	DOUBLE_DOT       // ..
	DOUBLE_DOT_EQUAL // ..=

	// Others
	OTHER // any character that is relayed verbatim (operators, dots, etc.)
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case OPENED_BRACKET:
		return "OPENED_BRACKET"
	case CLOSED_BRACKET:
		return "CLOSED_BRACKET"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	case DOUBLE_DOT:
		return "DOUBLE_DOT"
	case DOUBLE_DOT_EQUAL:
		return "DOUBLE_DOT_EQUAL"
	case OTHER:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
