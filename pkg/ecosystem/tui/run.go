package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vouchlabs/vouch/pkg/report"
	"github.com/vouchlabs/vouch/pkg/runner"
	"github.com/vouchlabs/vouch/pkg/scenario"
)

// StartRun executes the batch in a goroutine and streams progress back
// to the TUI via p.Send.
func StartRun(batch string, scenarios []scenario.Scenario, debug bool, p *tea.Program) {
	go func() {
		rec := report.NewRecorder()
		rec.BeginGroup(batch, len(scenarios))

		for i, sc := range scenarios {
			p.Send(scenarioStartMsg{Index: i})

			start := time.Now()
			r := &runner.Runner{Reporter: rec, Debug: debug}
			if err := r.Run(sc); err != nil {
				rec.EndGroup()
				p.Send(runDoneMsg{Summary: rec.Summarize(), Err: err})
				return
			}

			groups := rec.Groups()
			g := groups[0].Groups[len(groups[0].Groups)-1]
			failed := 0
			for _, c := range g.Checks {
				if !c.Passed {
					failed++
				}
			}
			p.Send(scenarioDoneMsg{
				Index:    i,
				Passed:   g.Passed(),
				Checks:   g.Checks,
				Failed:   failed,
				Duration: time.Since(start),
			})
		}

		rec.EndGroup()
		p.Send(runDoneMsg{Summary: rec.Summarize()})
	}()
}
