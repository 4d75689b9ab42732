package prompt

import (
	"path/filepath"
	"strings"
)

var languageByExt = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".java":  "java",
	".c":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".rb":    "ruby",
	".go":    "go",
	".php":   "php",
	".html":  "html",
	".css":   "css",
	".json":  "json",
	".ipynb": "python",
	".vue":   "html",
	".swift": "swift",
	".kt":    "kotlin",
	".xml":   "xml",
	".r":     "r",
}

// LanguageFor infers a markdown fence language tag from a filename's
// extension. Unknown extensions (and plain-text ones like .csv or .txt)
// get no tag, so their content is embedded unfenced.
func LanguageFor(filename string) string {
	return languageByExt[strings.ToLower(filepath.Ext(filename))]
}
