package parser

import (
	"strings"

	tok "github.com/shibukawa/axmac/tokenizer"
)

// Shape is the requested output shape of a transformation
type Shape int

const (
	// ShapeScalar expects a single term and emits one index value
	ShapeScalar Shape = iota
	// ShapeRange expects `start? RANGEOP end?` and emits a range of indices
	ShapeRange
	// ShapeArray expects a term list or `term ; count` and emits a fixed-size array
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeRange:
		return "range"
	case ShapeArray:
		return "array"
	default:
		return "unknown"
	}
}

// TermKind distinguishes resolved axis terms from relayed opaque terms
type TermKind int

const (
	// AxisTerm is a bare axis identifier resolved to its fixed index
	AxisTerm TermKind = iota
	// OpaqueTerm is any other expression, relayed without interpretation
	OpaqueTerm
)

func (k TermKind) String() string {
	switch k {
	case AxisTerm:
		return "axis"
	case OpaqueTerm:
		return "opaque"
	default:
		return "unknown"
	}
}

// Term is one classified endpoint or array element
type Term struct {
	Kind     TermKind
	Index    int         // resolved axis index, valid only for AxisTerm
	Tokens   []tok.Token // original token run, kept verbatim
	Position tok.Position
}

// Source reconstructs the verbatim text of the term's token run.
// For a parenthesized opaque term this is the inner sub-expression,
// without the surrounding parentheses.
func (t Term) Source() string {
	var builder strings.Builder
	for _, token := range t.Tokens {
		builder.WriteString(token.Value)
	}
	return strings.TrimSpace(builder.String())
}

// Spec is a parsed transformation request, one of ScalarSpec, RangeSpec
// or ArraySpec. It mirrors the input shape: scalar in, scalar out.
type Spec interface {
	Shape() Shape
}

// ScalarSpec is a single term emitted as one index value
type ScalarSpec struct {
	Term Term
}

// Shape returns ShapeScalar
func (ScalarSpec) Shape() Shape { return ShapeScalar }

// RangeSpec is a two-endpoint range. A nil Start or End is an open
// endpoint (`..z`, `x..`). Both endpoints independently may be axis or
// opaque. No bounds validation happens here: start > end is passed
// through to whatever consumes the emitted range.
type RangeSpec struct {
	Start     *Term
	End       *Term
	Inclusive bool
}

// Shape returns ShapeRange
func (RangeSpec) Shape() Shape { return ShapeRange }

// ArrayForm distinguishes the two array spellings
type ArrayForm int

const (
	// ListForm is an explicit, ordered element list
	ListForm ArrayForm = iota
	// RepeatForm is one term replicated Count times
	RepeatForm
)

func (f ArrayForm) String() string {
	switch f {
	case ListForm:
		return "list"
	case RepeatForm:
		return "repeat"
	default:
		return "unknown"
	}
}

// ArraySpec is a fixed-size array of index values
type ArraySpec struct {
	Form  ArrayForm
	Elems []Term // ListForm: elements in input order, possibly empty
	Elem  Term   // RepeatForm: the replicated term
	Count int    // RepeatForm: statically folded, always >= 0
}

// Shape returns ShapeArray
func (ArraySpec) Shape() Shape { return ShapeArray }

// Len returns the emitted array length
func (a ArraySpec) Len() int {
	if a.Form == RepeatForm {
		return a.Count
	}
	return len(a.Elems)
}
