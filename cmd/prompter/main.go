package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prompter-cli/prompter/cli"
	"github.com/prompter-cli/prompter/internal/tui"
	"github.com/prompter-cli/prompter/internal/ui"
	"github.com/prompter-cli/prompter/prompter"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Version {
		fmt.Printf("prompter %s\n", version)
		return
	}

	app, err := prompter.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Mode flags run once and exit without the TUI.
	if cfg.Apply || cfg.Output != "" || cfg.Clipboard || cfg.Task != "" {
		summary, err := app.Execute()
		if err != nil {
			reportError(err)
			os.Exit(1)
		}
		if len(summary.Applied) > 0 || len(summary.Failed) > 0 {
			ui.PrintApplySummary(summary.Applied, summary.Failed)
		} else if summary.Message != "" {
			ui.Info("%s", summary.Message)
		}
		return
	}

	model := tui.New(app, cfg)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func reportError(err error) {
	ui.Error("Error: %v", err)

	var detailed *prompter.DetailedError
	if errors.As(err, &detailed) {
		fmt.Fprintf(os.Stderr, "\n%s\n", detailed.Stack)
	}
}
