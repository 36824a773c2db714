package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shibukawa/axmac/parser"
	tok "github.com/shibukawa/axmac/tokenizer"
)

// GoDialect renders specs as Go expressions. Ranges become slice-bound
// pairs usable inside an index expression (`v[0:3]`), arrays become
// fixed-size composite literals (`[4]int{0, 1, 0, 3}`). Inclusive ends
// are folded to `end+1` when the end is statically known and rendered
// as `(end)+1` otherwise.
type GoDialect struct{}

// NewGoDialect creates a GoDialect
func NewGoDialect() *GoDialect {
	return &GoDialect{}
}

// Name returns "go"
func (d *GoDialect) Name() string { return "go" }

// Scalar renders one index value
func (d *GoDialect) Scalar(spec parser.ScalarSpec) (string, error) {
	return renderTerm(spec.Term), nil
}

// Range renders `lo:hi` slice bounds. Open endpoints render as empty
// bounds. Go has no inclusive slicing, so an inclusive range with an
// open end cannot be expressed.
func (d *GoDialect) Range(spec parser.RangeSpec) (string, error) {
	if spec.Inclusive && spec.End == nil {
		return "", fmt.Errorf("%w: inclusive range with open end", ErrNotExpressible)
	}

	var builder strings.Builder

	if spec.Start != nil {
		builder.WriteString(renderTerm(*spec.Start))
	}

	builder.WriteString(":")

	if spec.End != nil {
		if spec.Inclusive {
			builder.WriteString(renderInclusiveEnd(*spec.End))
		} else {
			builder.WriteString(renderTerm(*spec.End))
		}
	}

	return builder.String(), nil
}

// Array renders a fixed-size composite literal of index values
func (d *GoDialect) Array(spec parser.ArraySpec) (string, error) {
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

	return fmt.Sprintf("[%d]int{%s}", len(elems), strings.Join(elems, ", ")), nil
}

// renderInclusiveEnd folds `end+1` into a single literal when the end
// is a resolved axis or integer literal
func renderInclusiveEnd(t parser.Term) string {
	if t.Kind == parser.AxisTerm {
		return strconv.Itoa(t.Index + 1)
	}

	if len(t.Tokens) == 1 && t.Tokens[0].Type == tok.NUMBER {
		if value, err := strconv.Atoi(strings.ReplaceAll(t.Tokens[0].Value, "_", "")); err == nil {
			return strconv.Itoa(value + 1)
		}
	}

	return "(" + t.Source() + ")+1"
}
