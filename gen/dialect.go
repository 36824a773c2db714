// Package gen renders parsed specs into output expressions. Rendering
// is pure: the same spec always produces byte-identical output.
package gen

import (
	"errors"
	"fmt"

	"github.com/shibukawa/axmac/parser"
)

// Sentinel errors
var (
	// ErrUnknownDialect is returned for a dialect name New does not know
	ErrUnknownDialect = errors.New("unknown output dialect")
	// ErrNotExpressible is returned when a spec has no spelling in the
	// target dialect (e.g. an inclusive range with an open end in Go)
	ErrNotExpressible = errors.New("spec is not expressible in this dialect")
)

// Dialect renders the three spec shapes to output expression text
type Dialect interface {
	Name() string
	Scalar(spec parser.ScalarSpec) (string, error)
	Range(spec parser.RangeSpec) (string, error)
	Array(spec parser.ArraySpec) (string, error)
}

// New returns the dialect registered under name
func New(name string) (Dialect, error) {
	switch name {
	case "", "native":
		return NewNativeDialect(), nil
	case "go":
		return NewGoDialect(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of native, go)", ErrUnknownDialect, name)
	}
}

// Render dispatches a spec to the matching dialect method
func Render(d Dialect, spec parser.Spec) (string, error) {
	switch s := spec.(type) {
	case parser.ScalarSpec:
		return d.Scalar(s)
	case parser.RangeSpec:
		return d.Range(s)
	case parser.ArraySpec:
		return d.Array(s)
	default:
		return "", fmt.Errorf("%w: unsupported spec %T", ErrNotExpressible, spec)
	}
}

// renderTerm is the shared scalar emission: a resolved axis becomes its
// index, an opaque term relays its source text unchanged
func renderTerm(t parser.Term) string {
	if t.Kind == parser.AxisTerm {
		return fmt.Sprintf("%d", t.Index)
	}

	return t.Source()
}
