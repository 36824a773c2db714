package gen

import (
	"strings"

	"github.com/shibukawa/axmac/parser"
)

// NativeDialect renders specs in the macro grammar's own notation:
// `0`, `0..=2`, `2..4`, `..2`, `1..`, `[0, 1, 0, 3]`. This is the
// default output for hosts whose expression grammar has range and
// array literals of that spelling.
type NativeDialect struct{}

// NewNativeDialect creates a NativeDialect
func NewNativeDialect() *NativeDialect {
	return &NativeDialect{}
}

// Name returns "native"
func (d *NativeDialect) Name() string { return "native" }

// Scalar renders one index value
func (d *NativeDialect) Scalar(spec parser.ScalarSpec) (string, error) {
	return renderTerm(spec.Term), nil
}

// Range renders `start..end` or `start..=end`, with open endpoints left
// empty. Inclusivity is carried through unchanged.
func (d *NativeDialect) Range(spec parser.RangeSpec) (string, error) {
	var builder strings.Builder

	if spec.Start != nil {
		builder.WriteString(renderTerm(*spec.Start))
	}

	if spec.Inclusive {
		builder.WriteString("..=")
	} else {
		builder.WriteString("..")
	}

	if spec.End != nil {
		builder.WriteString(renderTerm(*spec.End))
	}

	return builder.String(), nil
}

// Array renders `[e0, e1, ...]`. Repeat form is expanded: `z; 4` becomes
// `[2, 2, 2, 2]`, and a zero count becomes `[]`.
func (d *NativeDialect) Array(spec parser.ArraySpec) (string, error) {
	elems := make([]string, 0, spec.Len())

	switch spec.Form {
	case parser.RepeatForm:
		rendered := renderTerm(spec.Elem)
		for range spec.Count {
			elems = append(elems, rendered)
		}
	default:
		for _, elem := range spec.Elems {
			elems = append(elems, renderTerm(elem))
		}
	}

	return "[" + strings.Join(elems, ", ") + "]", nil
}
