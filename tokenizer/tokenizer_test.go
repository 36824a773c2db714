package tokenizer

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenIterator(t *testing.T) {
	input := "x, y, x, w"
	tokenizer := NewAxTokenizer(input)

	expectedTypes := []TokenType{
		IDENTIFIER, COMMA, WHITESPACE, IDENTIFIER, COMMA, WHITESPACE,
		IDENTIFIER, COMMA, WHITESPACE, IDENTIFIER, EOF,
	}

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorWithOptions(t *testing.T) {
	input := "x ..= z"
	tokenizer := NewAxTokenizer(input, TokenizerOptions{
		SkipWhitespace: true,
	})

	expectedTypes := []TokenType{
		IDENTIFIER, DOUBLE_DOT_EQUAL, IDENTIFIER, EOF,
	}

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestIteratorEarlyTermination(t *testing.T) {
	input := "x, y, z, w"
	tokenizer := NewAxTokenizer(input)

	count := 0
	for _, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		count++

		if count >= 3 {
			break
		}
	}

	assert.Equal(t, 3, count)
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "axis identifier",
			input:    "x",
			expected: []TokenType{IDENTIFIER},
		},
		{
			name:     "half open range",
			input:    "z..4",
			expected: []TokenType{IDENTIFIER, DOUBLE_DOT, NUMBER},
		},
		{
			name:     "inclusive range",
			input:    "x..=z",
			expected: []TokenType{IDENTIFIER, DOUBLE_DOT_EQUAL, IDENTIFIER},
		},
		{
			name:     "range between numbers",
			input:    "1..3",
			expected: []TokenType{NUMBER, DOUBLE_DOT, NUMBER},
		},
		{
			name:     "parenthesized expression",
			input:    "(1)..z",
			expected: []TokenType{OPENED_PARENS, NUMBER, CLOSED_PARENS, DOUBLE_DOT, IDENTIFIER},
		},
		{
			name:     "repeat form",
			input:    "z;4",
			expected: []TokenType{IDENTIFIER, SEMICOLON, NUMBER},
		},
		{
			name:     "float literal",
			input:    "1.5",
			expected: []TokenType{NUMBER},
		},
		{
			name:     "member access stays other",
			input:    "a.b",
			expected: []TokenType{IDENTIFIER, OTHER, IDENTIFIER},
		},
		{
			name:     "function call",
			input:    "f(a, b)",
			expected: []TokenType{IDENTIFIER, OPENED_PARENS, IDENTIFIER, COMMA, WHITESPACE, IDENTIFIER, CLOSED_PARENS},
		},
		{
			name:     "bracket indexing",
			input:    "arr[0]",
			expected: []TokenType{IDENTIFIER, OPENED_BRACKET, NUMBER, CLOSED_BRACKET},
		},
		{
			name:     "string literal",
			input:    `"a, b"`,
			expected: []TokenType{STRING},
		},
		{
			name:     "operators are relayed",
			input:    "n + 1",
			expected: []TokenType{IDENTIFIER, WHITESPACE, OTHER, WHITESPACE, NUMBER},
		},
		{
			name:     "non-ascii identifier",
			input:    "π",
			expected: []TokenType{IDENTIFIER},
		},
		{
			name:     "non-ascii string index",
			input:    `m["café"]`,
			expected: []TokenType{IDENTIFIER, OPENED_BRACKET, STRING, CLOSED_BRACKET},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := NewAxTokenizer(tt.input)

			tokens, err := tokenizer.AllTokens()
			assert.NoError(t, err)

			actualTypes := make([]TokenType, 0, len(tokens))
			for _, token := range tokens {
				actualTypes = append(actualTypes, token.Type)
			}

			assert.Equal(t, tt.expected, actualTypes)
		})
	}
}

func TestTokenValuesRoundTrip(t *testing.T) {
	// opaque relay depends on token values concatenating back to the input
	inputs := []string{
		"x..=z",
		"(idx + 1)..w",
		"f(a, 'b,c')",
		"x, y,   x, w",
		"point.x + offset",
		`m["café"]`,
		"π + Δθ",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokenizer := NewAxTokenizer(input)

			tokens, err := tokenizer.AllTokens()
			assert.NoError(t, err)

			joined := ""
			for _, token := range tokens {
				joined += token.Value
			}

			assert.Equal(t, input, joined)
		})
	}
}

func TestPositions(t *testing.T) {
	tokenizer := NewAxTokenizer("x..=z")

	tokens, err := tokenizer.AllTokens()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(tokens))

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 1}, tokens[1].Position)
	assert.Equal(t, Position{Line: 1, Column: 5, Offset: 4}, tokens[2].Position)
}

func TestMultiByteRunePositions(t *testing.T) {
	// columns count runes, offsets count bytes
	tokenizer := NewAxTokenizer("café..z")

	tokens, err := tokenizer.AllTokens()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(tokens))

	assert.Equal(t, "café", tokens[0].Value)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 1, Column: 5, Offset: 5}, tokens[1].Position)
	assert.Equal(t, Position{Line: 1, Column: 7, Offset: 7}, tokens[2].Position)
}

func TestUnterminatedString(t *testing.T) {
	tokenizer := NewAxTokenizer(`"abc`)

	_, err := tokenizer.AllTokens()
	assert.True(t, errors.Is(err, ErrUnterminatedString))
}

func TestUnterminatedStringPosition(t *testing.T) {
	tokenizer := NewAxTokenizer("f(\n  \"abc")

	_, err := tokenizer.AllTokens()

	var terr *TokenizeError
	assert.True(t, errors.As(err, &terr))
	assert.True(t, errors.Is(err, ErrUnterminatedString))
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 5}, terr.Position)
}
