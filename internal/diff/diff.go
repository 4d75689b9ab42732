// Package diff renders a compact preview of what an apply would change.
// It is a display helper only: the applicator always writes the full
// replacement content, never a patch.
package diff

import (
	"fmt"
	"strings"
)

// Simple produces a minimal position-wise line diff with a ---/+++ header.
func Simple(path, before, after string) string {
	oldLines := strings.Split(before, "\n")
	newLines := strings.Split(after, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)

	maxLen := max(len(oldLines), len(newLines))
	for i := 0; i < maxLen; i++ {
		var oldLine, newLine string
		oldOK := i < len(oldLines)
		newOK := i < len(newLines)
		if oldOK {
			oldLine = oldLines[i]
		}
		if newOK {
			newLine = newLines[i]
		}
		if oldLine == newLine && oldOK && newOK {
			continue
		}
		if oldOK {
			fmt.Fprintf(&b, "-%s\n", oldLine)
		}
		if newOK {
			fmt.Fprintf(&b, "+%s\n", newLine)
		}
	}

	return b.String()
}
