package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Dir          string
	Extensions   []string
	Exclusions   []string
	Preset       string
	Template     string
	Task         string
	Constraints  string
	Info         string
	Format       string
	Output       string
	Clipboard    bool
	Apply        bool
	DryRun       bool
	MaxFileBytes int
	NoGitignore  bool
	NoAnimation  bool
	Version      bool
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.StringVarP(&cfg.Dir, "dir", "d", ".", "Project folder to scan.")
	pflag.StringSliceVarP(&cfg.Extensions, "extension", "e", []string{}, "File extensions to include (e.g., 'py,js'). Overrides the preset's list.")
	pflag.StringSliceVarP(&cfg.Exclusions, "exclude", "x", []string{}, "Extra exclusion tokens, added to the preset's list.")
	pflag.StringVar(&cfg.Preset, "preset", "None", "Extension preset name (see config).")
	pflag.StringVar(&cfg.Template, "template", "", "Prompt template key from the prompt library.")
	pflag.StringVarP(&cfg.Task, "task", "t", "", "Task or problem description for the prompt.")
	pflag.StringVar(&cfg.Constraints, "constraints", "", "Constraints/warnings section text.")
	pflag.StringVar(&cfg.Info, "info", "", "Additional information section text.")
	pflag.StringVar(&cfg.Format, "format", "", "Override the output-format instructions embedded in the prompt.")
	pflag.StringVarP(&cfg.Output, "output", "o", "", "Write the generated prompt to this file instead of stdout.")
	pflag.BoolVarP(&cfg.Clipboard, "clipboard", "b", false, "Copy the generated prompt to the clipboard.")
	pflag.BoolVarP(&cfg.Apply, "apply", "a", false, "Parse a model response (stdin pipe or clipboard) and apply the file updates.")
	pflag.BoolVar(&cfg.DryRun, "dry-run", false, "With --apply: show the parsed updates and diffs without writing anything.")
	pflag.IntVar(&cfg.MaxFileBytes, "max-bytes", 0, "Truncate each file embedded in the prompt to this many bytes (0 = no limit).")
	pflag.BoolVar(&cfg.NoGitignore, "no-gitignore", false, "Do not honor the project's .gitignore when scanning.")
	pflag.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable the loading spinner.")
	pflag.BoolVarP(&cfg.Version, "version", "v", false, "Print version and exit.")

	pflag.Usage = func() {
		fmt.Println("Usage: prompter [flags]")
		fmt.Println("\nAssemble selected project files into an LLM prompt, and apply a model's")
		fmt.Println("formatted response back to the file system with .bak backups.")
		fmt.Println("\nWith no mode flags, prompter starts an interactive session.")
		fmt.Println("\nExamples:")
		fmt.Println("  prompter -d ~/proj --preset Django -t 'Fix the login bug' -b")
		fmt.Println("  pbpaste | prompter -a -d ~/proj")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	// Validate mutually exclusive flags
	if cfg.Apply && (cfg.Output != "" || cfg.Clipboard) {
		return nil, fmt.Errorf("error: --apply cannot be combined with --output or --clipboard")
	}
	if cfg.DryRun && !cfg.Apply {
		return nil, fmt.Errorf("error: --dry-run only makes sense with --apply")
	}

	// Normalize extensions
	for i, ext := range cfg.Extensions {
		if len(ext) > 0 && ext[0] != '.' {
			cfg.Extensions[i] = "." + ext
		}
	}

	return cfg, nil
}
