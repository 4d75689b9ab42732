package parser

import (
	"fmt"
	"strings"

	"github.com/prompter-cli/prompter/internal/model"
)

// The response grammar is three line tokens, no nesting, no escaping:
//
//	file: <relative/path>
//	--- START CODE ---
//	<body lines, verbatim>
//	--- END CODE ---
//
// Blocks repeat back to back. Only the 'file:' keyword is matched
// case-insensitively; delimiter lines must match exactly after trimming.
const (
	fileMarker     = "file:"
	startDelimiter = "--- START CODE ---"
	endDelimiter   = "--- END CODE ---"
)

type parseState int

const (
	stateIdle parseState = iota
	stateExpectStart
	stateInBlock
)

// Parse scans a raw model response and extracts the ordered list of file
// edits. The first grammar violation aborts the whole parse: the result is
// always either every block or none.
func Parse(text string) ([]model.ParsedEdit, error) {
	var (
		edits       []model.ParsedEdit
		state       = stateIdle
		currentFile string
		currentBody []string
	)

	lines := splitLines(text)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		lineNo := i + 1

		if isFileLine(trimmed) {
			if state == stateInBlock {
				return nil, fmt.Errorf("missing '%s' before new file block at line %d", endDelimiter, lineNo)
			}
			path := strings.TrimSpace(trimmed[strings.Index(trimmed, ":")+1:])
			if path == "" {
				return nil, fmt.Errorf("invalid file line: missing path after '%s' at line %d", fileMarker, lineNo)
			}
			currentFile = path
			currentBody = currentBody[:0]
			state = stateExpectStart
			continue
		}

		switch state {
		case stateIdle:
			// Prose between blocks is ignored.

		case stateExpectStart:
			if trimmed != startDelimiter {
				return nil, fmt.Errorf(
					"expected '%s' after file line for file '%s' but got '%s' at line %d",
					startDelimiter, currentFile, trimmed, lineNo)
			}
			state = stateInBlock

		case stateInBlock:
			if trimmed == endDelimiter {
				edits = append(edits, model.ParsedEdit{
					Filename:   currentFile,
					NewContent: strings.Join(currentBody, "\n"),
				})
				currentFile = ""
				currentBody = nil
				state = stateIdle
				continue
			}
			currentBody = append(currentBody, line)
		}
	}

	switch state {
	case stateInBlock:
		return nil, fmt.Errorf("missing '%s' for file '%s'", endDelimiter, currentFile)
	case stateExpectStart:
		return nil, fmt.Errorf("missing '%s' after file line for file '%s'", startDelimiter, currentFile)
	}

	return edits, nil
}

func isFileLine(trimmed string) bool {
	return len(trimmed) >= len(fileMarker) &&
		strings.EqualFold(trimmed[:len(fileMarker)], fileMarker)
}

// splitLines splits on LF and drops a trailing CR so CRLF responses parse
// the same as LF ones. Body lines are otherwise untouched.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
