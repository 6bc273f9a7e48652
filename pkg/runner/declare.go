package runner

import (
	"fmt"

	"github.com/vouchlabs/vouch/pkg/report"
	"github.com/vouchlabs/vouch/pkg/scenario"
)

// Batch runs a sequence of scenarios under one named top-level group,
// planned at one entry per scenario.
type Batch struct {
	Name     string
	Reporter report.Reporter
	Debug    bool
}

// Declare validates every scenario up front and then runs each one
// exactly once. Any malformed scenario aborts the batch before anything
// executes; scenario execution itself never aborts the batch, since
// subject-under-test failures are data for the check phases.
func (b *Batch) Declare(scenarios []scenario.Scenario) error {
	for i, sc := range scenarios {
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("scenario %d: %w", i, err)
		}
	}

	b.Reporter.BeginGroup(b.Name, len(scenarios))
	defer b.Reporter.EndGroup()

	for _, sc := range scenarios {
		r := &Runner{Reporter: b.Reporter, Debug: b.Debug}
		if err := r.Run(sc); err != nil {
			return err
		}
	}
	return nil
}

// Declare runs scenarios as a batch named name against rep.
func Declare(name string, scenarios []scenario.Scenario, rep report.Reporter) error {
	b := &Batch{Name: name, Reporter: rep}
	return b.Declare(scenarios)
}
