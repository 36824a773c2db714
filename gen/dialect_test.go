package gen

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/axmac/parser"
)

func render(t *testing.T, d Dialect, input string, shape parser.Shape) string {
	t.Helper()

	spec, err := parser.Parse(input, shape)
	assert.NoError(t, err)

	output, err := Render(d, spec)
	assert.NoError(t, err)

	return output
}

func TestNativeDialect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		shape    parser.Shape
		expected string
	}{
		{name: "scalar x", input: "x", shape: parser.ShapeScalar, expected: "0"},
		{name: "scalar y", input: "y", shape: parser.ShapeScalar, expected: "1"},
		{name: "scalar parenthesized axis relays", input: "(z)", shape: parser.ShapeScalar, expected: "z"},
		{name: "inclusive range", input: "x..=z", shape: parser.ShapeRange, expected: "0..=2"},
		{name: "half open range", input: "z..4", shape: parser.ShapeRange, expected: "2..4"},
		{name: "expression start", input: "(1)..z", shape: parser.ShapeRange, expected: "1..2"},
		{name: "open start", input: "..z", shape: parser.ShapeRange, expected: "..2"},
		{name: "open start inclusive", input: "..=w", shape: parser.ShapeRange, expected: "..=3"},
		{name: "open end", input: "y..", shape: parser.ShapeRange, expected: "1.."},
		{name: "list array", input: "x, y, x, w", shape: parser.ShapeArray, expected: "[0, 1, 0, 3]"},
		{name: "mixed array", input: "x, (z), n", shape: parser.ShapeArray, expected: "[0, z, n]"},
		{name: "repeat array", input: "z; 4", shape: parser.ShapeArray, expected: "[2, 2, 2, 2]"},
		{name: "repeat zero", input: "z; 0", shape: parser.ShapeArray, expected: "[]"},
		{name: "empty list", input: "", shape: parser.ShapeArray, expected: "[]"},
	}

	dialect := NewNativeDialect()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, dialect, tt.input, tt.shape))
		})
	}
}

func TestGoDialect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		shape    parser.Shape
		expected string
	}{
		{name: "scalar", input: "w", shape: parser.ShapeScalar, expected: "3"},
		{name: "half open range", input: "x..z", shape: parser.ShapeRange, expected: "0:2"},
		{name: "inclusive axis end folds", input: "x..=z", shape: parser.ShapeRange, expected: "0:3"},
		{name: "inclusive literal end folds", input: "x..=7", shape: parser.ShapeRange, expected: "0:8"},
		{name: "inclusive opaque end", input: "x..=(hi)", shape: parser.ShapeRange, expected: "0:(hi)+1"},
		{name: "open start", input: "..z", shape: parser.ShapeRange, expected: ":2"},
		{name: "open end", input: "y..", shape: parser.ShapeRange, expected: "1:"},
		{name: "list array", input: "x, y, x, w", shape: parser.ShapeArray, expected: "[4]int{0, 1, 0, 3}"},
		{name: "repeat array", input: "z; 4", shape: parser.ShapeArray, expected: "[4]int{2, 2, 2, 2}"},
		{name: "repeat zero", input: "z; 0", shape: parser.ShapeArray, expected: "[0]int{}"},
	}

	dialect := NewGoDialect()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, dialect, tt.input, tt.shape))
		})
	}
}

func TestGoDialectInclusiveOpenEnd(t *testing.T) {
	spec, err := parser.ParseRange("..=w")
	assert.NoError(t, err)

	_, err = NewGoDialect().Range(spec)
	assert.True(t, errors.Is(err, ErrNotExpressible))
}

func TestNew(t *testing.T) {
	native, err := New("native")
	assert.NoError(t, err)
	assert.Equal(t, "native", native.Name())

	defaulted, err := New("")
	assert.NoError(t, err)
	assert.Equal(t, "native", defaulted.Name())

	golang, err := New("go")
	assert.NoError(t, err)
	assert.Equal(t, "go", golang.Name())

	_, err = New("rust")
	assert.True(t, errors.Is(err, ErrUnknownDialect))
}

func TestRenderIsIdempotent(t *testing.T) {
	dialect := NewNativeDialect()

	for range 3 {
		assert.Equal(t, "0..=2", render(t, dialect, "x..=z", parser.ShapeRange))
	}
}
