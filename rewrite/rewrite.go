// Package rewrite finds axis macro invocations in source text and
// splices in the expanded expressions. Everything outside an invocation
// is relayed byte for byte, including string literals and comments that
// merely mention a macro name.
package rewrite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/axmac/gen"
	"github.com/shibukawa/axmac/parser"
)

// ErrUnterminatedMacro is returned when an invocation's closing
// delimiter is missing.
var ErrUnterminatedMacro = errors.New("unterminated macro invocation")

// macroShapes maps invocation names to their request shapes
var macroShapes = map[string]parser.Shape{
	"ax":  parser.ShapeScalar,
	"axr": parser.ShapeRange,
	"axs": parser.ShapeArray,
}

// Expansion records one rewritten invocation site
type Expansion struct {
	Line   int
	Column int
	Macro  string
	Input  string
	Output string
}

// Rewriter expands macro invocations using one output dialect
type Rewriter struct {
	dialect gen.Dialect
}

// New creates a Rewriter
func New(dialect gen.Dialect) *Rewriter {
	return &Rewriter{dialect: dialect}
}

// Rewrite expands every invocation in src and returns the transformed
// text with a report of the expansion sites. The first malformed
// invocation aborts with an error carrying its source position.
func (r *Rewriter) Rewrite(src string) (string, []Expansion, error) {
	var (
		builder    strings.Builder
		expansions []Expansion
	)

	s := &scanner{src: src, line: 1, column: 1}

	for !s.eof() {
		if s.skipStringOrComment(&builder) {
			continue
		}

		name, ok := s.peekMacro()
		if !ok {
			builder.WriteByte(s.current())
			s.advance()
			continue
		}

		line, column := s.line, s.column

		input, err := s.readInvocation(name)
		if err != nil {
			return "", nil, err
		}

		output, err := r.expand(name, input, line, column)
		if err != nil {
			return "", nil, err
		}

		builder.WriteString(output)
		expansions = append(expansions, Expansion{
			Line:   line,
			Column: column,
			Macro:  name,
			Input:  input,
			Output: output,
		})
	}

	return builder.String(), expansions, nil
}

func (r *Rewriter) expand(name, input string, line, column int) (string, error) {
	spec, err := parser.Parse(input, macroShapes[name])
	if err != nil {
		return "", offsetError(err, line, column)
	}

	output, err := gen.Render(r.dialect, spec)
	if err != nil {
		return "", fmt.Errorf("%w at line %d, column %d", err, line, column)
	}

	return output, nil
}

// offsetError shifts a parse error's position, which is relative to the
// invocation's argument text, to the position in the containing file
func offsetError(err error, line, column int) error {
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		return fmt.Errorf("%w at line %d, column %d", err, line, column)
	}

	shifted := *perr
	if shifted.Position.Line <= 1 {
		shifted.Position.Line = line
		shifted.Position.Column = column + shifted.Position.Column
	} else {
		shifted.Position.Line = line + shifted.Position.Line - 1
	}

	return &shifted
}

// scanner walks source text byte by byte with line/column tracking
type scanner struct {
	src    string
	pos    int
	line   int
	column int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) current() byte {
	return s.src[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}
	return s.src[s.pos+offset]
}

func (s *scanner) advance() {
	if s.src[s.pos] == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	s.pos++
}

// skipStringOrComment relays a whole string literal or comment verbatim
// so macro names inside them are never expanded
func (s *scanner) skipStringOrComment(builder *strings.Builder) bool {
	switch c := s.current(); c {
	case '"', '\'', '`':
		builder.WriteByte(c)
		s.advance()

		for !s.eof() {
			cur := s.current()
			builder.WriteByte(cur)
			s.advance()

			if cur == '\\' && c != '`' && !s.eof() {
				builder.WriteByte(s.current())
				s.advance()
				continue
			}

			if cur == c {
				break
			}
		}

		return true
	case '/':
		if s.peekAt(1) == '/' {
			for !s.eof() && s.current() != '\n' {
				builder.WriteByte(s.current())
				s.advance()
			}

			return true
		}

		if s.peekAt(1) == '*' {
			for !s.eof() {
				if s.current() == '*' && s.peekAt(1) == '/' {
					builder.WriteByte('*')
					s.advance()
					builder.WriteByte('/')
					s.advance()
					break
				}

				builder.WriteByte(s.current())
				s.advance()
			}

			return true
		}
	}

	return false
}

// peekMacro reports whether an invocation starts at the current
// position: a macro name at an identifier boundary followed by `!` and
// an opening delimiter
func (s *scanner) peekMacro() (string, bool) {
	if s.pos > 0 && isIdentChar(s.src[s.pos-1]) {
		return "", false
	}

	for _, name := range []string{"axr", "axs", "ax"} {
		if !strings.HasPrefix(s.src[s.pos:], name+"!") {
			continue
		}

		rest := s.pos + len(name) + 1
		for rest < len(s.src) && (s.src[rest] == ' ' || s.src[rest] == '\t') {
			rest++
		}

		if rest < len(s.src) && (s.src[rest] == '(' || s.src[rest] == '[') {
			return name, true
		}
	}

	return "", false
}

// readInvocation consumes `name!(...)` or `name![...]` and returns the
// argument text between the delimiters
func (s *scanner) readInvocation(name string) (string, error) {
	line, column := s.line, s.column

	for range len(name) + 1 { // name and `!`
		s.advance()
	}

	for s.current() == ' ' || s.current() == '\t' {
		s.advance()
	}

	open := s.current()
	closing := byte(')')
	if open == '[' {
		closing = byte(']')
	}

	s.advance()
	start := s.pos
	depth := 1

	for !s.eof() {
		switch c := s.current(); c {
		case '"', '\'':
			s.advance()
			for !s.eof() && s.current() != c {
				if s.current() == '\\' {
					s.advance()
				}
				if !s.eof() {
					s.advance()
				}
			}
			if !s.eof() {
				s.advance()
			}
			continue
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				input := s.src[start:s.pos]
				s.advance()
				return input, nil
			}
		}

		s.advance()
	}

	return "", fmt.Errorf("%w: %s! at line %d, column %d",
		ErrUnterminatedMacro, name, line, column)
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
