package debugger

import (
	"fmt"
	"strconv"

	"github.com/vouchlabs/vouch/pkg/report"
	"github.com/vouchlabs/vouch/pkg/runner"
)

// handleNext runs the next scenario and advances.
func (d *Debugger) handleNext() error {
	if d.index >= len(d.scenarios) {
		fmt.Fprintf(d.output, "All scenarios completed.\n")
		return nil
	}

	sc := d.scenarios[d.index]
	fmt.Fprintf(d.output, "Running scenario %d: %s\n", d.index+1, sc.Name)

	rep := report.Multi(report.NewConsole(d.output), d.recorder)
	r := &runner.Runner{Reporter: rep, Debug: d.debug}
	if err := r.Run(sc); err != nil {
		return err
	}
	d.index++
	return nil
}

// handleContinue runs all remaining scenarios, halting on the first
// scenario with a failed check.
func (d *Debugger) handleContinue() error {
	for d.index < len(d.scenarios) {
		if err := d.handleNext(); err != nil {
			return err
		}
		groups := d.recorder.Groups()
		if last := groups[len(groups)-1]; !last.Passed() {
			fmt.Fprintf(d.output, "Halted on failure.\n")
			return nil
		}
	}
	fmt.Fprintf(d.output, "All scenarios completed.\n")
	return nil
}

// handleList prints the batch with run state markers.
func (d *Debugger) handleList() {
	done := d.recorder.Groups()
	for i, sc := range d.scenarios {
		marker := " "
		if i < len(done) {
			if done[i].Passed() {
				marker = "✓"
			} else {
				marker = "✗"
			}
		} else if i == d.index {
			marker = ">"
		}
		fmt.Fprintf(d.output, "  %s %d. %s\n", marker, i+1, sc.Name)
	}
}

// handleShow prints the declared call and expectations of a scenario,
// defaulting to the current one.
func (d *Debugger) handleShow(parts []string) {
	idx := d.index
	if len(parts) > 1 {
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 || n > len(d.scenarios) {
			fmt.Fprintf(d.output, "Usage: show [1..%d]\n", len(d.scenarios))
			return
		}
		idx = n - 1
	}
	if idx >= len(d.scenarios) {
		fmt.Fprintf(d.output, "All scenarios completed; pick one with 'show N'.\n")
		return
	}

	sc := d.scenarios[idx]
	fmt.Fprintf(d.output, "Scenario %d: %s\n", idx+1, sc.Name)
	fmt.Fprintf(d.output, "  call: %s.%s\n", sc.Call.Target.Name(), sc.Call.Method)
	if sc.Call.Construct != nil && !sc.Call.Construct.IsZero() {
		fmt.Fprintf(d.output, "  construct: %v\n", sc.Call.Construct.Positional)
	}
	if sc.Args != nil {
		fmt.Fprintf(d.output, "  args: %v\n", sc.Args.Positional)
	}
	fmt.Fprintf(d.output, "  planned checks: %d\n", sc.Expect.PlannedChecks())
}

// handleReport prints the summary table for everything run so far.
func (d *Debugger) handleReport() {
	groups := d.recorder.Groups()
	if len(groups) == 0 {
		fmt.Fprintf(d.output, "Nothing has run yet.\n")
		return
	}
	report.WriteTable(d.output, groups)
}

// handleHelp prints available commands.
func (d *Debugger) handleHelp() {
	fmt.Fprintf(d.output, `Commands:
  next, n        run the next scenario
  continue, c    run remaining scenarios, halt on first failure
  list, l        list scenarios with pass/fail markers
  show, s [N]    show a scenario's call and expectations
  report, r      print the summary table for completed scenarios
  help, ?        show this help
  quit, q        exit the debugger
`)
}
