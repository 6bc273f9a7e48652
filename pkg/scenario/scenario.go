// Package scenario defines the declarative unit of test data: the call
// to make plus the expected outcomes to check once it has run.
// Scenarios are plain immutable data; execution lives in pkg/runner.
package scenario

import (
	"fmt"

	"github.com/vouchlabs/vouch/pkg/target"
)

// CallSpec names the target type, how to construct it, and which method
// to invoke. Target is a resolved type reference, never a name string.
type CallSpec struct {
	Target    *target.Target
	Construct *target.ArgList
	Method    string
}

// Scenario is one declared unit of test data. Args, when set, override
// any default call arguments the suite layer filled in.
type Scenario struct {
	Name   string
	Call   CallSpec
	Args   *target.ArgList
	Expect Expectations
}

// Validate reports whether the scenario is well formed. A malformed
// scenario is a framework-usage fault: callers fail fast instead of
// converting it into a check failure.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario is missing a name")
	}
	if s.Call.Target == nil {
		return fmt.Errorf("scenario %q names no target", s.Name)
	}
	if s.Call.Method == "" {
		return fmt.Errorf("scenario %q names no method", s.Name)
	}
	if s.Expect.Empty() {
		return fmt.Errorf("scenario %q declares no expectations", s.Name)
	}
	return nil
}
