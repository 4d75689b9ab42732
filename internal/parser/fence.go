package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Unwrap handles responses where the model wrapped the update blocks in
// markdown code fences. If any fenced block contains the update grammar,
// the concatenation of those blocks replaces the raw text; otherwise the
// input passes through untouched.
func Unwrap(raw string) string {
	if !strings.Contains(raw, "```") {
		return raw
	}

	source := []byte(raw)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var payloads []string
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		if body := content.String(); containsGrammar(body) {
			payloads = append(payloads, body)
		}
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil || len(payloads) == 0 {
		return raw
	}
	return strings.Join(payloads, "\n")
}

// containsGrammar reports whether the text holds at least one 'file:' line
// followed somewhere by the start delimiter.
func containsGrammar(s string) bool {
	sawFile := false
	for _, line := range splitLines(s) {
		trimmed := strings.TrimSpace(line)
		if isFileLine(trimmed) {
			sawFile = true
			continue
		}
		if sawFile && trimmed == startDelimiter {
			return true
		}
	}
	return false
}
