package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// AxTokenizer tokenizes the argument text of one macro invocation and
// returns an iterator. Identifier case is always preserved because opaque
// terms must be relayed byte for byte.
type AxTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
}

// NewAxTokenizer creates a new AxTokenizer
func NewAxTokenizer(input string, options ...TokenizerOptions) *AxTokenizer {
	opts := TokenizerOptions{
		SkipWhitespace: false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	return &AxTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens
func (t *AxTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:    t.input,
			position: 0,
			line:     1,
			column:   1,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}
				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *AxTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 16)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}
		if token.Type == EOF {
			break
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input    string
	position int // byte offset of the next unread rune
	offset   int // byte offset of the current rune
	line     int
	column   int
	current  rune
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	switch t.current {
	case 0:
		return t.newToken(EOF, ""), nil
	case ' ', '\t', '\r', '\n':
		return t.readWhitespace(), nil
	case '(':
		token := t.newToken(OPENED_PARENS, string(t.current))
		t.readChar()
		return token, nil
	case ')':
		token := t.newToken(CLOSED_PARENS, string(t.current))
		t.readChar()
		return token, nil
	case '[':
		token := t.newToken(OPENED_BRACKET, string(t.current))
		t.readChar()
		return token, nil
	case ']':
		token := t.newToken(CLOSED_BRACKET, string(t.current))
		t.readChar()
		return token, nil
	case ',':
		token := t.newToken(COMMA, string(t.current))
		t.readChar()
		return token, nil
	case ';':
		token := t.newToken(SEMICOLON, string(t.current))
		t.readChar()
		return token, nil
	case '\'', '"':
		return t.readString(t.current)
	case '.':
		if t.peekChar() == '.' {
			token := t.newToken(DOUBLE_DOT, "..")
			t.readChar()
			t.readChar()
			if t.current == '=' {
				token.Type = DOUBLE_DOT_EQUAL
				token.Value = "..="
				t.readChar()
			}
			return token, nil
		}
		// single dot (member access inside opaque expressions)
		token := t.newToken(OTHER, string(t.current))
		t.readChar()
		return token, nil
	default:
		if unicode.IsLetter(t.current) || t.current == '_' {
			return t.readWord(), nil
		} else if unicode.IsDigit(t.current) {
			return t.readNumber(), nil
		} else if unicode.IsControl(t.current) {
			return Token{}, &TokenizeError{
				Err:      fmt.Errorf("%w: %q", ErrUnexpectedCharacter, t.current),
				Position: Position{Line: t.line, Column: t.column - 1, Offset: t.offset},
			}
		}
		// operators and any other punctuation are relayed verbatim
		token := t.newToken(OTHER, string(t.current))
		t.readChar()
		return token, nil
	}
}

// newToken creates a token at the current position
func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Position: Position{
			Line:   t.line,
			Column: t.column - 1,
			Offset: t.offset,
		},
	}
}

// readChar reads the next rune. Input is decoded rune by rune so that
// multi-byte identifiers and string literals are relayed byte for byte.
func (t *tokenizer) readChar() {
	if t.position >= len(t.input) {
		t.current = 0
		t.offset = len(t.input)
		return
	}

	r, width := utf8.DecodeRuneInString(t.input[t.position:])
	t.current = r
	t.offset = t.position
	t.position += width

	if t.current == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
}

// peekChar looks ahead at the next rune
func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.input[t.position:])
	return r
}

// readWhitespace reads whitespace characters
func (t *tokenizer) readWhitespace() Token {
	var builder strings.Builder
	token := t.newToken(WHITESPACE, "")

	for unicode.IsSpace(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	token.Value = builder.String()

	return token
}

// readWord reads identifiers. Case is preserved: axis matching is exact
// and opaque identifiers must round-trip unchanged.
func (t *tokenizer) readWord() Token {
	var builder strings.Builder
	token := t.newToken(IDENTIFIER, "")

	for unicode.IsLetter(t.current) || unicode.IsDigit(t.current) || t.current == '_' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	token.Value = builder.String()

	return token
}

// readNumber reads numeric literals. A dot followed by another dot is a
// range operator, not a fraction: `1..3` is NUMBER DOUBLE_DOT NUMBER.
func (t *tokenizer) readNumber() Token {
	var builder strings.Builder
	token := t.newToken(NUMBER, "")

	for unicode.IsDigit(t.current) || t.current == '_' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	if t.current == '.' && unicode.IsDigit(t.peekChar()) {
		builder.WriteRune(t.current)
		t.readChar()
		for unicode.IsDigit(t.current) || t.current == '_' {
			builder.WriteRune(t.current)
			t.readChar()
		}
	}

	token.Value = builder.String()

	return token
}

// readString reads string literals (kept verbatim, including quotes)
func (t *tokenizer) readString(delimiter rune) (Token, error) {
	var builder strings.Builder
	token := t.newToken(STRING, "")

	builder.WriteRune(delimiter) // include opening quote
	t.readChar()

	for t.current != 0 && t.current != delimiter {
		if t.current == '\\' {
			builder.WriteRune(t.current)
			t.readChar()
			if t.current != 0 {
				builder.WriteRune(t.current)
				t.readChar()
			}
		} else {
			builder.WriteRune(t.current)
			t.readChar()
		}
	}

	if t.current != delimiter {
		return Token{}, &TokenizeError{
			Err:      ErrUnterminatedString,
			Position: token.Position,
		}
	}

	builder.WriteRune(delimiter) // include closing quote
	t.readChar()

	token.Value = builder.String()

	return token, nil
}
