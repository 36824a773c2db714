package parser

import (
	"errors"

	tok "github.com/shibukawa/axmac/tokenizer"
	pc "github.com/shibukawa/parsercombinator"
)

// Parse recognizes one macro argument text against the requested output
// shape and returns the corresponding spec. It is a pure, single-pass
// computation: identical input always yields an identical spec, and a
// malformed input is reported immediately with its location.
func Parse(input string, shape Shape) (Spec, error) {
	tokenizer := tok.NewAxTokenizer(input)

	tokens, err := tokenizer.AllTokens()
	if err != nil {
		pos := tok.Position{Line: 1, Column: 1}
		msg := err.Error()

		var terr *tok.TokenizeError
		if errors.As(err, &terr) {
			pos = terr.Position
			msg = terr.Err.Error()
		}

		return nil, &ParseError{
			Err:      ErrMalformedSyntax,
			Message:  msg,
			Position: pos,
		}
	}

	entities := toEntities(tokens)
	pctx := pc.NewParseContext[entity]()

	var grammar pc.Parser[entity]

	switch shape {
	case ShapeScalar:
		grammar = scalarShape
	case ShapeRange:
		grammar = rangeShape
	case ShapeArray:
		grammar = arrayShape
	default:
		return nil, newParseError(ErrMalformedSyntax, tok.Position{Line: 1, Column: 1},
			"unknown request shape %d", int(shape))
	}

	_, parsed, err := grammar(pctx, entities)
	if err != nil {
		if errors.Is(err, pc.ErrCritical) {
			return nil, &ParseError{
				Err:      ErrMalformedSyntax,
				Message:  err.Error(),
				Position: inputPosition(tokens),
			}
		}

		return nil, newParseError(ErrMalformedSyntax, inputPosition(tokens),
			"input %q does not match %s shape", input, shape)
	}

	switch shape {
	case ShapeScalar:
		return buildScalar(parsed)
	case ShapeRange:
		return buildRange(parsed, input)
	default:
		return buildArray(parsed)
	}
}

// ParseScalar recognizes a single term: `x` emits 0, `(z)` relays z
func ParseScalar(input string) (ScalarSpec, error) {
	spec, err := Parse(input, ShapeScalar)
	if err != nil {
		return ScalarSpec{}, err
	}

	return spec.(ScalarSpec), nil
}

// ParseRange recognizes `start? RANGEOP end?`
func ParseRange(input string) (RangeSpec, error) {
	spec, err := Parse(input, ShapeRange)
	if err != nil {
		return RangeSpec{}, err
	}

	return spec.(RangeSpec), nil
}

// ParseArray recognizes a comma-separated term list or `term ; count`
func ParseArray(input string) (ArraySpec, error) {
	spec, err := Parse(input, ShapeArray)
	if err != nil {
		return ArraySpec{}, err
	}

	return spec.(ArraySpec), nil
}

func buildScalar(parsed []pc.Token[entity]) (Spec, error) {
	for _, t := range parsed {
		if t.Val.term != nil {
			return ScalarSpec{Term: *t.Val.term}, nil
		}
	}

	return nil, newParseError(ErrMalformedSyntax, tok.Position{Line: 1, Column: 1},
		"scalar shape matched without a term")
}

func buildRange(parsed []pc.Token[entity], input string) (Spec, error) {
	var (
		start     *Term
		end       *Term
		opSeen    bool
		inclusive bool
		opPos     tok.Position
	)

	for _, t := range parsed {
		if t.Val.term != nil {
			if opSeen {
				end = t.Val.term
			} else {
				start = t.Val.term
			}

			continue
		}

		switch t.Val.token.Type {
		case tok.DOUBLE_DOT:
			opSeen = true
			opPos = t.Val.token.Position
		case tok.DOUBLE_DOT_EQUAL:
			opSeen = true
			inclusive = true
			opPos = t.Val.token.Position
		}
	}

	// `..` with neither endpoint and `start..=` with no end have no
	// counterpart in the macro grammar
	if start == nil && end == nil {
		return nil, newParseError(ErrMalformedSyntax, opPos,
			"range %q needs at least one endpoint", input)
	}

	if inclusive && end == nil {
		return nil, newParseError(ErrMalformedSyntax, opPos,
			"inclusive range %q needs an end", input)
	}

	return RangeSpec{Start: start, End: end, Inclusive: inclusive}, nil
}

func buildArray(parsed []pc.Token[entity]) (Spec, error) {
	var (
		terms  []Term
		repeat bool
	)

	for _, t := range parsed {
		if t.Val.term != nil {
			terms = append(terms, *t.Val.term)
			continue
		}

		if t.Val.token.Type == tok.SEMICOLON {
			repeat = true
		}
	}

	if repeat {
		// repeatShape guarantees exactly two terms: element, count
		count, err := foldCount(terms[1])
		if err != nil {
			return nil, err
		}

		return ArraySpec{Form: RepeatForm, Elem: terms[0], Count: count}, nil
	}

	if terms == nil {
		terms = []Term{}
	}

	return ArraySpec{Form: ListForm, Elems: terms}, nil
}

func inputPosition(tokens []tok.Token) tok.Position {
	if len(tokens) > 0 {
		return tokens[0].Position
	}

	return tok.Position{Line: 1, Column: 1}
}
