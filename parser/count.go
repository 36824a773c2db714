package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	tok "github.com/shibukawa/axmac/tokenizer"
)

var errNotInteger = errors.New("expression does not evaluate to an integer")

// celEnv has no declared variables: only expressions whose value is
// known at transformation time can evaluate successfully.
var celEnv, celEnvErr = cel.NewEnv()

// foldCount resolves a repeat-form count to a non-negative integer at
// transformation time. The count position is never axis-interpreted:
// `axs![z; w]` fails because `w` there is an unresolved variable, not
// the fourth axis. A bare integer literal is the fast path; any other
// expression is constant-folded with CEL. Zero is a valid count.
func foldCount(t Term) (int, error) {
	src := t.Source()

	if len(t.Tokens) == 1 && t.Tokens[0].Type == tok.NUMBER {
		return literalCount(src, t.Position)
	}

	value, err := evalConstant(src)
	if err != nil {
		return 0, newParseError(ErrMalformedRepeatCount, t.Position,
			"count %q is not statically known (%v)", src, err)
	}

	if value < 0 {
		return 0, newParseError(ErrMalformedRepeatCount, t.Position,
			"count %q is negative", src)
	}

	return int(value), nil
}

func literalCount(src string, pos tok.Position) (int, error) {
	if strings.Contains(src, ".") {
		return 0, newParseError(ErrMalformedRepeatCount, pos,
			"count %q is not an integer", src)
	}

	value, err := strconv.Atoi(strings.ReplaceAll(src, "_", ""))
	if err != nil {
		return 0, newParseError(ErrMalformedRepeatCount, pos,
			"count %q is not an integer", src)
	}

	return value, nil
}

func evalConstant(src string) (int64, error) {
	if celEnvErr != nil {
		return 0, celEnvErr
	}

	ast, issues := celEnv.Compile(src)
	if issues != nil && issues.Err() != nil {
		return 0, issues.Err()
	}

	prg, err := celEnv.Program(ast)
	if err != nil {
		return 0, err
	}

	out, _, err := prg.Eval(cel.NoVars())
	if err != nil {
		return 0, err
	}

	switch value := out.Value().(type) {
	case int64:
		return value, nil
	case uint64:
		return int64(value), nil
	default:
		return 0, errNotInteger
	}
}
