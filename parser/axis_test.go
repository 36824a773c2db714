package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestResolveAxis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		index int
		ok    bool
	}{
		{name: "x is first", input: "x", index: 0, ok: true},
		{name: "y is second", input: "y", index: 1, ok: true},
		{name: "z is third", input: "z", index: 2, ok: true},
		{name: "w is fourth", input: "w", index: 3, ok: true},
		{name: "unknown identifier", input: "v", ok: false},
		{name: "upper case is not an axis", input: "X", ok: false},
		{name: "larger identifier is not an axis", input: "xray", ok: false},
		{name: "empty string", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := ResolveAxis(tt.input)
			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.index, index)
			}
		})
	}
}

func TestResolveAxisIsStable(t *testing.T) {
	// the mapping never changes across invocations
	for range 100 {
		for i, name := range AxisNames() {
			index, ok := ResolveAxis(name)
			assert.True(t, ok)
			assert.Equal(t, i, index)
		}
	}
}

func TestAxisIndicesAreDistinct(t *testing.T) {
	seen := map[int]string{}

	for _, name := range AxisNames() {
		index, ok := ResolveAxis(name)
		assert.True(t, ok)

		previous, duplicated := seen[index]
		assert.False(t, duplicated, "axes %s and %s share index %d", previous, name, index)
		seen[index] = name
	}
}
