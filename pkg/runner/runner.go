// Package runner orchestrates one scenario: it executes the declared
// invocation under output capture, records the outcome, and evaluates
// each declared expectation independently, emitting one report per
// executed check. Subject-under-test failures become data; only
// framework-usage faults surface as errors.
package runner

import (
	"fmt"
	"reflect"

	"github.com/vouchlabs/vouch/pkg/capture"
	"github.com/vouchlabs/vouch/pkg/invoke"
	"github.com/vouchlabs/vouch/pkg/report"
	"github.com/vouchlabs/vouch/pkg/scenario"
	"github.com/vouchlabs/vouch/pkg/target"
)

// Runner executes scenarios against a reporter. A Runner is cheap and
// carries no per-scenario state; each Run is a single forward pass.
type Runner struct {
	Reporter report.Reporter
	// Debug surfaces diagnostic notes: the target and method being
	// invoked, and return values no expectation covers. Notes never
	// count toward planned checks.
	Debug bool
}

// New creates a runner reporting to rep.
func New(rep report.Reporter) *Runner {
	return &Runner{Reporter: rep}
}

// Run executes one scenario and evaluates its expectations. The returned
// error is always a framework-usage fault (malformed scenario, capture
// setup failure); expectation mismatches are reported, never returned,
// and errors raised by the subject under test are recorded in the
// outcome.
func (r *Runner) Run(sc scenario.Scenario) error {
	if err := sc.Validate(); err != nil {
		return err
	}

	r.Reporter.BeginGroup(sc.Name, sc.Expect.PlannedChecks())
	defer r.Reporter.EndGroup()

	outcome, postArgs, err := r.execute(sc)
	if err != nil {
		return err
	}

	r.checkStreams(sc, outcome)
	r.checkStatus(sc, outcome)
	r.checkReturn(sc, outcome, postArgs)
	return nil
}

// execute runs the invocation inside a capture region and records the
// outcome. Containment is unconditional: returned errors and panics are
// both recorded as a raised status, never re-raised and never swallowed.
func (r *Runner) execute(sc scenario.Scenario) (*Outcome, target.ArgList, error) {
	inv := &invoke.Invocation{
		Target: sc.Call.Target,
		Method: sc.Call.Method,
	}
	if sc.Call.Construct != nil {
		inv.ConstructArgs = *sc.Call.Construct
	}
	if sc.Args != nil {
		inv.SetArgs(*sc.Args)
	}

	if r.Debug {
		r.Reporter.Note(fmt.Sprintf("invoking %s.%s", sc.Call.Target.Name(), sc.Call.Method))
	}

	var value any
	var callErr error
	captured, err := capture.Do(func() {
		defer func() {
			if rec := recover(); rec != nil {
				callErr = &PanicError{Value: rec}
			}
		}()
		value, callErr = inv.Call()
	})
	if err != nil {
		return nil, target.ArgList{}, fmt.Errorf("enter capture region: %w", err)
	}

	outcome := &Outcome{Stdout: captured.Stdout, Stderr: captured.Stderr}
	if callErr != nil {
		outcome.Status = StatusRaised
		outcome.Err = callErr
	} else {
		outcome.Status = StatusCompleted
		outcome.Return = value
	}
	return outcome, inv.Args, nil
}

// checkStreams compares captured stdout/stderr text against the declared
// expectations. Absent expectations emit no report at all.
func (r *Runner) checkStreams(sc scenario.Scenario, o *Outcome) {
	if sc.Expect.Stdout != nil {
		r.reportMatch(sc.Expect.Stdout, o.Stdout, sc.Name+" - stdout")
	}
	if sc.Expect.Stderr != nil {
		r.reportMatch(sc.Expect.Stderr, o.Stderr, sc.Name+" - stderr")
	}
}

// checkStatus evaluates lives/dies/throws. Lives structurally overrides
// the other two; dies and throws are otherwise independent and may both
// run for the same scenario.
func (r *Runner) checkStatus(sc scenario.Scenario, o *Outcome) {
	exp := sc.Expect
	if exp.Lives {
		r.Reporter.Report(o.Status == StatusCompleted, sc.Name+" lived")
		return
	}
	if exp.Dies {
		r.Reporter.Report(o.Status == StatusRaised, sc.Name+" - died")
	}
	if exp.Throws != nil {
		passed := o.Status == StatusRaised && matchError(o.Err, exp.Throws)
		desc := fmt.Sprintf("%s - throws %s (got %s)", sc.Name, errorName(exp.Throws), errorName(o.Err))
		r.Reporter.Report(passed, desc)
	}
}

// checkReturn evaluates the return-value and mutation expectations.
func (r *Runner) checkReturn(sc scenario.Scenario, o *Outcome, postArgs target.ArgList) {
	exp := sc.Expect
	if exp.Return != nil {
		r.reportMatch(exp.Return, o.Return, sc.Name+" - return value")
	} else if r.Debug && o.Status == StatusCompleted && o.Return != nil {
		r.Reporter.Note(fmt.Sprintf("%s: untested return value %v", sc.Name, o.Return))
	}
	if exp.Mutates != nil {
		r.reportMatch(exp.Mutates, postCallState(postArgs), sc.Name+" - mutates")
	}
}

// reportMatch runs the single expectation-vs-actual comparison and emits
// one report. Comparator expectations embed the actual value, operator
// and right-hand side in the description for diagnostics.
func (r *Runner) reportMatch(expected, actual any, desc string) {
	if c, ok := scenario.ComparatorOf(expected); ok {
		desc = fmt.Sprintf("%s (%s)", desc, c.Describe(actual))
	}
	r.Reporter.Report(scenario.Match(expected, actual), desc)
}

// postCallState snapshots the positional call arguments after the call,
// dereferencing pointers so mutations performed through them are
// visible. A single argument compares directly; several compare as a
// slice in declaration order.
func postCallState(args target.ArgList) any {
	vals := make([]any, len(args.Positional))
	for i, a := range args.Positional {
		vals[i] = deref(a)
	}
	if len(vals) == 1 {
		return vals[0]
	}
	return vals
}

func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}
