// Package report defines the reporting boundary of the engine and its
// built-in reporters. The runner emits one pass/fail record per evaluated
// expectation, grouped under the scenario's name; reporters decide how
// those records are presented or stored.
package report

// Reporter receives check results from scenario runs. Implementations
// are not required to be safe for concurrent use: execution is
// single-threaded end to end.
type Reporter interface {
	// BeginGroup declares a named group of checks and how many are
	// planned to run within it. Groups may nest: a batch group contains
	// one group per scenario.
	BeginGroup(name string, planned int)
	// Report records one executed check.
	Report(passed bool, description string)
	// Note emits a diagnostic line that is not a check result and never
	// counts toward the plan.
	Note(text string)
	// EndGroup closes the innermost open group.
	EndGroup()
}
