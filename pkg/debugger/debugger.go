// Package debugger implements the interactive REPL for stepping through
// scenario batches.
package debugger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/vouchlabs/vouch/pkg/report"
	"github.com/vouchlabs/vouch/pkg/scenario"
)

// Debugger provides an interactive REPL for running scenarios one at a
// time and inspecting results between steps.
type Debugger struct {
	batch     string
	scenarios []scenario.Scenario
	index     int
	output    io.Writer
	rl        *readline.Instance
	recorder  *report.Recorder
	debug     bool
}

// New creates a debugger over the given batch. Every scenario is
// validated up front; a malformed element fails the whole batch before
// anything runs.
func New(batch string, scenarios []scenario.Scenario, debug bool) (*Debugger, error) {
	for i, sc := range scenarios {
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
	}
	return &Debugger{
		batch:     batch,
		scenarios: scenarios,
		output:    os.Stdout,
		recorder:  report.NewRecorder(),
		debug:     debug,
	}, nil
}

// Run starts the interactive REPL loop.
func (d *Debugger) Run() error {
	commands := []string{"next", "continue", "list", "show", "report", "help", "quit"}

	var completer = readline.NewPrefixCompleter()
	for _, cmd := range commands {
		completer.Children = append(completer.Children, readline.PcItem(cmd))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          d.buildPrompt(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	d.rl = rl
	defer rl.Close()

	fmt.Fprintf(d.output, "vouch debugger — %s, %d scenarios\n", d.batch, len(d.scenarios))
	fmt.Fprintf(d.output, "Type 'help' for available commands, 'next' to run the next scenario.\n\n")

	for {
		rl.SetPrompt(d.buildPrompt())
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "next", "n":
			if err := d.handleNext(); err != nil {
				fmt.Fprintf(d.output, "Error: %v\n", err)
			}
		case "continue", "c":
			if err := d.handleContinue(); err != nil {
				fmt.Fprintf(d.output, "Error: %v\n", err)
			}
		case "list", "l":
			d.handleList()
		case "show", "s":
			d.handleShow(parts)
		case "report", "r":
			d.handleReport()
		case "help", "?":
			d.handleHelp()
		case "quit", "q":
			fmt.Fprintf(d.output, "Exiting debugger.\n")
			return nil
		default:
			fmt.Fprintf(d.output, "Unknown command: %q. Type 'help' for available commands.\n", parts[0])
		}
	}
}

// buildPrompt creates the prompt string: vouch[N/total | name]>
func (d *Debugger) buildPrompt() string {
	if d.index >= len(d.scenarios) {
		return "vouch[done]> "
	}
	return fmt.Sprintf("vouch[%d/%d | %s]> ", d.index+1, len(d.scenarios), d.scenarios[d.index].Name)
}
