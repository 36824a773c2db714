package parser

import (
	"fmt"
	"slices"

	tok "github.com/shibukawa/axmac/tokenizer"
	pc "github.com/shibukawa/parsercombinator"
)

// entity is the combinator payload: either one raw token, or a term
// collapsed out of a token run by the term parser.
type entity struct {
	token tok.Token
	term  *Term
}

func toEntities(tokens []tok.Token) []pc.Token[entity] {
	results := make([]pc.Token[entity], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[entity]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: entity{token: token},
			Raw: token.Value,
		}
	}

	return results
}

func primitiveType(typeName string, types ...tok.TokenType) pc.Parser[entity] {
	return func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		if len(tokens) > 0 && tokens[0].Val.term == nil && slices.Contains(types, tokens[0].Val.token.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

// Primitives
var (
	space     = primitiveType("space", tok.WHITESPACE)
	comma     = primitiveType("comma", tok.COMMA)
	semicolon = primitiveType("semicolon", tok.SEMICOLON)
	rangeOp   = primitiveType("rangeOp", tok.DOUBLE_DOT, tok.DOUBLE_DOT_EQUAL)

	// sp consumes and drops zero or more whitespace tokens
	sp = pc.Drop(pc.ZeroOrMore("space", space))
)

// term consumes one endpoint or element: everything up to the next
// top-level comma, semicolon or range operator, with parentheses and
// brackets balanced. The run is then classified: a bare axis identifier
// resolves to its index, anything else is relayed opaque. Modeled after
// the balanced-group scanners in the statement parser.
func term(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
	parens := 0
	brackets := 0
	consumed := len(tokens)

scan:
	for i, t := range tokens {
		switch t.Val.token.Type {
		case tok.COMMA, tok.SEMICOLON, tok.DOUBLE_DOT, tok.DOUBLE_DOT_EQUAL:
			if parens == 0 && brackets == 0 {
				consumed = i
				break scan
			}
		case tok.OPENED_PARENS:
			parens++
		case tok.CLOSED_PARENS:
			if parens == 0 {
				p := t.Val.token.Position
				return 0, nil, fmt.Errorf("%w: unbalanced ')' at line %d, column %d",
					pc.ErrCritical, p.Line, p.Column)
			}
			parens--
		case tok.OPENED_BRACKET:
			brackets++
		case tok.CLOSED_BRACKET:
			if brackets == 0 {
				p := t.Val.token.Position
				return 0, nil, fmt.Errorf("%w: unbalanced ']' at line %d, column %d",
					pc.ErrCritical, p.Line, p.Column)
			}
			brackets--
		}
	}

	if parens > 0 || brackets > 0 {
		p := tokens[0].Val.token.Position
		return 0, nil, fmt.Errorf("%w: missing closing delimiter at line %d, column %d",
			pc.ErrCritical, p.Line, p.Column)
	}

	run := trimSpaceEntities(tokens[:consumed])
	if len(run) == 0 {
		return 0, nil, pc.ErrNotMatch
	}

	result := classify(run)

	return consumed, []pc.Token[entity]{{
		Type: "term",
		Pos:  run[0].Pos,
		Val:  entity{term: &result},
		Raw:  result.Source(),
	}}, nil
}

// classify implements the disambiguation rule: a single bare axis
// identifier resolves; a fully parenthesized group opts out of axis
// interpretation and relays its inner content; everything else is
// relayed verbatim.
func classify(run []pc.Token[entity]) Term {
	first := run[0].Val.token

	if len(run) == 1 && first.Type == tok.IDENTIFIER {
		if index, ok := ResolveAxis(first.Value); ok {
			return Term{
				Kind:     AxisTerm,
				Index:    index,
				Tokens:   []tok.Token{first},
				Position: first.Position,
			}
		}
	}

	if first.Type == tok.OPENED_PARENS && closesRun(run) {
		inner := trimSpaceEntities(run[1 : len(run)-1])
		if len(inner) > 0 {
			return Term{
				Kind:     OpaqueTerm,
				Tokens:   entityTokens(inner),
				Position: first.Position,
			}
		}
	}

	return Term{
		Kind:     OpaqueTerm,
		Tokens:   entityTokens(run),
		Position: first.Position,
	}
}

// closesRun reports whether the opening parenthesis at run[0] matches
// the run's final token, so `(a)` strips but `(a) + (b)` does not.
func closesRun(run []pc.Token[entity]) bool {
	depth := 0

	for i, t := range run {
		switch t.Val.token.Type {
		case tok.OPENED_PARENS:
			depth++
		case tok.CLOSED_PARENS:
			depth--
			if depth == 0 {
				return i == len(run)-1
			}
		}
	}

	return false
}

func trimSpaceEntities(run []pc.Token[entity]) []pc.Token[entity] {
	start := 0
	end := len(run)

	for start < end && run[start].Val.token.Type == tok.WHITESPACE {
		start++
	}
	for end > start && run[end-1].Val.token.Type == tok.WHITESPACE {
		end--
	}

	return run[start:end]
}

func entityTokens(run []pc.Token[entity]) []tok.Token {
	results := make([]tok.Token, 0, len(run))
	for _, t := range run {
		results = append(results, t.Val.token)
	}

	return results
}

// Shape grammars. A shape match must consume the whole input.
var (
	scalarShape = pc.Seq(sp, term, sp, pc.EOS[entity]())

	rangeShape = pc.Seq(sp, pc.Optional(term), sp, rangeOp, sp, pc.Optional(term), sp, pc.EOS[entity]())

	repeatShape = pc.Seq(sp, term, sp, semicolon, sp, term, sp, pc.EOS[entity]())

	listShape = pc.Seq(sp, term,
		pc.ZeroOrMore("elements", pc.Seq(sp, comma, sp, term)),
		sp, pc.EOS[entity]())

	emptyShape = pc.Seq(sp, pc.EOS[entity]())

	arrayShape = pc.Or(repeatShape, listShape, emptyShape)
)
