package runner

import "fmt"

// Status is the terminal state of one invocation.
type Status string

const (
	// StatusCompleted means the call returned normally.
	StatusCompleted Status = "completed"
	// StatusRaised means the call returned an error or panicked.
	StatusRaised Status = "raised"
)

// Outcome captures what actually happened when an invocation ran:
// terminal status, the returned value or the raised error (exactly one,
// determined by Status), and the captured stream text, which is always
// populated regardless of status. The runner fills an Outcome during its
// single execute pass; afterwards it is read-only.
type Outcome struct {
	Status Status
	Return any
	Err    error
	Stdout string
	Stderr string
}

// PanicError wraps a value recovered from a panicking subject under
// test so panics flow through the same raised-error path as returned
// errors.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
