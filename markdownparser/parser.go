// Package markdownparser expands axis macros inside fenced code blocks
// of markdown documents. Prose, headings and inline code are relayed
// untouched; only fenced block content is rewritten.
package markdownparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/shibukawa/axmac/rewrite"
)

// Expand reads a markdown document and rewrites every fenced code
// block with the given rewriter. Expansion line numbers are reported in
// document coordinates.
func Expand(reader io.Reader, rewriter *rewrite.Rewriter) (string, []rewrite.Expansion, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read content: %w", err)
	}

	blocks, err := fencedBlocks(source)
	if err != nil {
		return "", nil, err
	}

	var (
		builder    strings.Builder
		expansions []rewrite.Expansion
	)

	prev := 0

	for _, block := range blocks {
		builder.Write(source[prev:block.start])

		blockLine := lineOf(source, block.start)

		expanded, hits, err := rewriter.Rewrite(string(source[block.start:block.stop]))
		if err != nil {
			return "", nil, fmt.Errorf("%w (in code block starting at line %d)", err, blockLine)
		}

		builder.WriteString(expanded)

		for _, hit := range hits {
			hit.Line += blockLine - 1
			expansions = append(expansions, hit)
		}

		prev = block.stop
	}

	builder.Write(source[prev:])

	return builder.String(), expansions, nil
}

type span struct {
	start int
	stop  int
}

// fencedBlocks collects the source byte ranges of all fenced code
// blocks, in document order
func fencedBlocks(source []byte) ([]span, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var blocks []span

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if fenced, ok := n.(*ast.FencedCodeBlock); ok {
			lines := fenced.Lines()
			if lines.Len() > 0 {
				blocks = append(blocks, span{
					start: lines.At(0).Start,
					stop:  lines.At(lines.Len() - 1).Stop,
				})
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown document: %w", err)
	}

	return blocks, nil
}

func lineOf(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
