package prompt

import (
	"fmt"
	"strings"

	"github.com/prompter-cli/prompter/internal/model"
)

// DefaultOutputFormat is the instruction text telling the model how to
// format file updates. It is the grammar the response parser consumes, so
// changing one side means changing the other.
const DefaultOutputFormat = `file: path/to/file.ext
--- START CODE ---
<entire new content for that file>
--- END CODE ---

Repeat the above block for each file changed.

Example:
file: src/main.py
--- START CODE ---
def my_function():
    print("Hello World!")
--- END CODE ---

file: requirements.txt
--- START CODE ---
requests==2.25.1
numpy==1.20.0
--- END CODE ---`

// Inputs are the free-text fields assembled around the selected code.
type Inputs struct {
	ProblemDescription string
	Constraints        string
	OutputFormat       string
	AdditionalInfo     string
	Template           string
	// MaxFileBytes truncates each file's content to this many bytes,
	// with a marker line. Zero means no limit.
	MaxFileBytes int
}

// Build concatenates the selected files and the task description into one
// prompt, in a fixed section order. Empty sections are omitted; the code
// section is always present.
func Build(files []model.SourceFile, in Inputs) string {
	var sections []string

	if v := strings.TrimSpace(in.ProblemDescription); v != "" {
		sections = append(sections, "##BEGIN-PROBLEM-STATEMENT\n"+v+"\n##END-PROBLEM-STATEMENT")
	}
	if v := strings.TrimSpace(in.Constraints); v != "" {
		sections = append(sections, "##BEGIN-CONSTRAINTS-WARNINGS\n"+v+"\n##END-CONSTRAINTS-WARNINGS")
	}
	if v := strings.TrimSpace(in.OutputFormat); v != "" {
		sections = append(sections, "##BEGIN-OUTPUT-FORMAT\n"+v+"\n##END-OUTPUT-FORMAT")
	}

	code := []string{"##BEGIN-RELEVANT-CODE"}
	for _, f := range files {
		content := f.Content
		if in.MaxFileBytes > 0 && len(content) > in.MaxFileBytes {
			content = content[:in.MaxFileBytes] +
				fmt.Sprintf("\n<!-- truncated: showing first %d of %d bytes -->", in.MaxFileBytes, len(f.Content))
		}

		var block string
		if lang := LanguageFor(f.Filename); lang != "" {
			block = fmt.Sprintf("```%s\n%s\n```", lang, content)
		} else {
			block = content
		}
		code = append(code, fmt.Sprintf("###BEGIN-FILE: %s\n%s\n###END-FILE", f.DisplayPath, block))
	}
	code = append(code, "##END-RELEVANT-CODE")
	sections = append(sections, strings.Join(code, "\n\n"))

	if v := strings.TrimSpace(in.AdditionalInfo); v != "" {
		sections = append(sections, "##BEGIN-ADDITIONAL-INFORMATION\n"+v+"\n##END-ADDITIONAL-INFORMATION")
	}
	if v := strings.TrimSpace(in.Template); v != "" {
		sections = append(sections, "##BEGIN-TEMPLATE\n"+v+"\n##END-TEMPLATE")
	}

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}
