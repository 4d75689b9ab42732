package prompter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/prompter-cli/prompter/cli"
	"github.com/prompter-cli/prompter/internal/config"
	"github.com/prompter-cli/prompter/internal/diff"
	"github.com/prompter-cli/prompter/internal/model"
	"github.com/prompter-cli/prompter/internal/parser"
	"github.com/prompter-cli/prompter/internal/patch"
	"github.com/prompter-cli/prompter/internal/prompt"
	"github.com/prompter-cli/prompter/internal/scan"
	"github.com/prompter-cli/prompter/internal/session"
	"github.com/prompter-cli/prompter/internal/source"
)

// App orchestrates the entire application logic.
type App struct {
	cfg            *cli.Config
	presets        *config.Config
	Session        *session.Session
	sourceProvider *source.Provider
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	presets, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &App{
		cfg:            cfg,
		presets:        presets,
		Session:        session.New(),
		sourceProvider: source.New(),
	}, nil
}

// Presets exposes the loaded preset tables.
func (a *App) Presets() *config.Config {
	return a.presets
}

// Dir returns the project folder.
func (a *App) Dir() string {
	return a.cfg.Dir
}

// ScanOptions resolves the effective filter settings: explicit -e flags
// override the preset's extension list, while -x tokens add to the
// preset's exclusions.
func (a *App) ScanOptions() scan.Options {
	extensions := a.cfg.Extensions
	if len(extensions) == 0 {
		extensions = a.presets.ExtensionsFor(a.cfg.Preset)
	}
	exclusions := a.presets.ExclusionsFor(a.cfg.Preset)
	exclusions = append(exclusions, a.cfg.Exclusions...)

	return scan.Options{
		Extensions:   extensions,
		Exclusions:   exclusions,
		UseGitignore: !a.cfg.NoGitignore,
	}
}

// Execute runs one non-interactive mode based on the parsed flags.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch {
	case a.cfg.Apply:
		return a.applyResponse()
	default:
		return a.packPrompt()
	}
}

// CollectFiles scans the project folder and rebuilds the session's
// selection map, everything selected.
func (a *App) CollectFiles() ([]string, error) {
	files, err := scan.Collect(a.cfg.Dir, a.ScanOptions())
	if err != nil {
		return nil, err
	}
	a.Session.SetFiles(files)
	return files, nil
}

// BuildPrompt assembles the prompt from the session's selected files.
func (a *App) BuildPrompt() (string, error) {
	selected := a.Session.SelectedFiles()
	if len(selected) == 0 {
		return "", fmt.Errorf("no files selected")
	}

	files := scan.ReadSelected(a.cfg.Dir, selected)

	format := a.cfg.Format
	if format == "" {
		format = prompt.DefaultOutputFormat
	}

	return prompt.Build(files, prompt.Inputs{
		ProblemDescription: a.cfg.Task,
		Constraints:        a.cfg.Constraints,
		OutputFormat:       format,
		AdditionalInfo:     a.cfg.Info,
		Template:           a.presets.TemplateFor(a.cfg.Template),
		MaxFileBytes:       a.cfg.MaxFileBytes,
	}), nil
}

// packPrompt collects every candidate file and emits the assembled prompt
// to the configured destination.
func (a *App) packPrompt() (model.Summary, error) {
	files, err := a.CollectFiles()
	if err != nil {
		return model.Summary{}, err
	}
	if len(files) == 0 {
		return model.Summary{Message: "No files matched the current filters. Nothing to do."}, nil
	}

	text, err := a.BuildPrompt()
	if err != nil {
		return model.Summary{}, err
	}

	note := fmt.Sprintf("%d file(s)", len(files))
	if tokens, tokErr := prompt.CountTokens(text); tokErr == nil {
		note = fmt.Sprintf("%s, ~%d tokens", note, tokens)
	}

	switch {
	case a.cfg.Output != "":
		if err := os.WriteFile(a.cfg.Output, []byte(text), 0644); err != nil {
			return model.Summary{}, fmt.Errorf("failed to write prompt: %w", err)
		}
		return model.Summary{Message: fmt.Sprintf("Prompt written to %s (%s).", a.cfg.Output, note)}, nil
	case a.cfg.Clipboard:
		if err := clipboard.WriteAll(text); err != nil {
			return model.Summary{}, fmt.Errorf("failed to copy prompt to clipboard: %w", err)
		}
		return model.Summary{Message: fmt.Sprintf("Prompt copied to clipboard (%s).", note)}, nil
	default:
		fmt.Println(text)
		return model.Summary{Message: fmt.Sprintf("Prompt generated (%s).", note)}, nil
	}
}

// ParseResponse validates a model response and stores the extracted edits
// in the session, all selected for apply.
func (a *App) ParseResponse(content string) ([]model.ParsedEdit, error) {
	edits, err := parser.Parse(parser.Unwrap(content))
	if err != nil {
		return nil, err
	}
	a.Session.SetEdits(edits)
	return edits, nil
}

// ApplyEdits writes the session's selected edits, accumulating backup
// records for displaced files.
func (a *App) ApplyEdits() (model.Summary, error) {
	if len(a.Session.Edits) == 0 {
		return model.Summary{Message: "No changes to apply."}, nil
	}

	applied, err := patch.Apply(a.cfg.Dir, a.Session.Edits, a.Session.EditSelected, &a.Session.Backups)
	if err != nil {
		return model.Summary{Applied: applied, Failed: failedFrom(a.Session.Edits, applied, a.Session.EditSelected)}, err
	}
	if len(applied) == 0 {
		return model.Summary{Message: "No files were selected to apply changes."}, nil
	}
	return model.Summary{
		Applied: applied,
		Message: fmt.Sprintf("Updated/created (old versions renamed to *%s): %s", patch.BackupSuffix, strings.Join(applied, ", ")),
	}, nil
}

// failedFrom lists the selected edits that did not make it before an
// apply aborted.
func failedFrom(edits []model.ParsedEdit, applied []string, selected func(string) bool) []string {
	done := make(map[string]bool, len(applied))
	for _, f := range applied {
		done[f] = true
	}
	var failed []string
	for _, e := range edits {
		if selected != nil && !selected(e.Filename) {
			continue
		}
		if !done[e.Filename] {
			failed = append(failed, e.Filename)
		}
	}
	return failed
}

// RestoreBackup reverses one apply from the session's backup list.
func (a *App) RestoreBackup(backupPath string) (model.Summary, error) {
	record, err := patch.Restore(a.Session.Backups, backupPath)
	if err != nil {
		return model.Summary{}, err
	}
	return model.Summary{
		Message: fmt.Sprintf("Restored backup %s -> %s", record.BackupPath, record.OriginalPath),
	}, nil
}

// Backups lists the session's backup records for selection.
func (a *App) Backups() []patch.Label {
	return patch.Labels(a.Session.Backups)
}

// DiffFor previews what applying one edit would change, against the
// file's current content (empty for a new file).
func (a *App) DiffFor(edit model.ParsedEdit) string {
	target := a.targetPath(edit.Filename)
	before := ""
	if _, err := os.Stat(target); err == nil {
		before = scan.ReadFile(target)
	}
	return diff.Simple(edit.Filename, before, edit.NewContent)
}

func (a *App) targetPath(filename string) string {
	return filepath.Join(a.cfg.Dir, filename)
}

// applyResponse reads a model response from stdin or the clipboard,
// parses it, and either previews (--dry-run) or applies the edits.
func (a *App) applyResponse() (model.Summary, error) {
	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return model.Summary{}, err
	}
	if strings.TrimSpace(content) == "" {
		return model.Summary{Message: "Response is empty. Nothing to process."}, nil
	}

	edits, err := a.ParseResponse(content)
	if err != nil {
		return model.Summary{}, err
	}
	if len(edits) == 0 {
		return model.Summary{Message: "No code blocks detected."}, nil
	}

	if a.cfg.DryRun {
		for _, edit := range edits {
			fmt.Print(a.DiffFor(edit))
		}
		return model.Summary{Message: fmt.Sprintf("Dry run: %d file update(s) parsed, nothing written.", len(edits))}, nil
	}

	return a.ApplyEdits()
}
