package scenario

import (
	"github.com/vouchlabs/vouch/pkg/compare"
)

// Expectations is the normalized set of checks to run against an outcome.
// Return, Stdout, Stderr and Mutates each hold either a literal value or
// a *compare.Comparator; nil means the check is absent (skipped, neither
// pass nor fail). Asserting that a call literally returns nil is spelled
// with compare.IsNil().
//
// Throws holds either a sentinel error (matched with errors.Is) or a
// typed sample value (matched against the error's unwrap chain by type).
// Lives structurally overrides Dies and Throws: when set, only the
// "lived" check runs.
type Expectations struct {
	Return  any
	Lives   bool
	Dies    bool
	Throws  any
	Stdout  any
	Stderr  any
	Mutates any
}

// Empty reports whether no expectation field is set at all.
func (e Expectations) Empty() bool {
	return e.Return == nil && !e.Lives && !e.Dies && e.Throws == nil &&
		e.Stdout == nil && e.Stderr == nil && e.Mutates == nil
}

// PlannedChecks counts the reports one run of these expectations emits:
// up to one each for stdout, stderr, return value and mutates, plus the
// status checks — one for lives, otherwise one each for dies and throws.
// Debug notes never count.
func (e Expectations) PlannedChecks() int {
	n := 0
	if e.Stdout != nil {
		n++
	}
	if e.Stderr != nil {
		n++
	}
	if e.Lives {
		n++
	} else {
		if e.Dies {
			n++
		}
		if e.Throws != nil {
			n++
		}
	}
	if e.Return != nil {
		n++
	}
	if e.Mutates != nil {
		n++
	}
	return n
}

// Match evaluates one expectation value against an actual value: the
// comparator's predicate when the expectation is a comparator, deep
// structural equality otherwise. This is the single representation
// branch; check phases never inspect expectation values themselves.
func Match(expected, actual any) bool {
	if c, ok := expected.(*compare.Comparator); ok {
		return c.Compare(actual)
	}
	return compare.Equal(actual, expected)
}

// ComparatorOf extracts the comparator form of an expectation value.
func ComparatorOf(expected any) (*compare.Comparator, bool) {
	c, ok := expected.(*compare.Comparator)
	return c, ok
}
