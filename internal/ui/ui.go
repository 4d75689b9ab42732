package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// --- Summaries ---

func PrintApplySummary(applied, failed []string) {
	Header("\n--- Apply Summary ---")

	if len(applied) == 0 && len(failed) == 0 {
		Info("No files were updated.")
		return
	}

	if len(applied) > 0 {
		Success("Updated/created %d file(s) (old versions renamed to *.bak):", len(applied))
		for _, f := range applied {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(failed) > 0 {
		Error("Failed to process %d file(s):", len(failed))
		for _, f := range failed {
			fmt.Printf("  - %s\n", f)
		}
	}
}
