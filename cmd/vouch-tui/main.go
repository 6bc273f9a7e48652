// Package main provides the vouch-tui binary — Bubble Tea terminal UI.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vouchlabs/vouch/pkg/ecosystem/tui"
	"github.com/vouchlabs/vouch/pkg/schema"
	"github.com/vouchlabs/vouch/pkg/target"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: vouch-tui <scenarios.yaml> [--debug]")
		os.Exit(1)
	}

	filePath := os.Args[1]
	debug := false
	for _, arg := range os.Args[2:] {
		if arg == "--debug" {
			debug = true
		}
	}

	doc, errs := schema.ValidateFile(filePath)
	failed := false
	for _, e := range errs {
		if e.Severity == "error" {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Phase, e.Message)
			failed = true
		}
	}
	if failed {
		fmt.Fprintln(os.Stderr, "Validation failed")
		os.Exit(1)
	}

	name, scenarios, err := schema.Resolve(doc, target.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(name, scenarios)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Run the batch in the background — results stream in via p.Send.
	tui.StartRun(name, scenarios, debug, p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
