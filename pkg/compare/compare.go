// Package compare implements the fuzzy and relational match rules used by
// scenario expectations in place of literal values. A Comparator wraps a
// binary predicate together with its right-hand operand; evaluating it
// against an actual value is stateless and side-effect free.
package compare

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Predicate is a binary match rule, evaluated as predicate(actual, rhs).
type Predicate func(actual, rhs any) bool

// Comparator pairs a predicate with its right-hand operand. Comparators
// are reusable: Compare may be called any number of times.
type Comparator struct {
	name string
	pred Predicate
	rhs  any
}

// New builds a comparator from an arbitrary predicate. The name is used
// in check descriptions (e.g. "gt", "contains").
func New(name string, pred Predicate, rhs any) *Comparator {
	return &Comparator{name: name, pred: pred, rhs: rhs}
}

// Compare evaluates predicate(actual, rhs).
func (c *Comparator) Compare(actual any) bool {
	return c.pred(actual, c.rhs)
}

// Name returns the human-readable operator name.
func (c *Comparator) Name() string { return c.name }

// RHS returns the right-hand operand.
func (c *Comparator) RHS() any { return c.rhs }

// Describe renders the comparison against an actual value for diagnostics,
// e.g. "11 gt 10" or `"abc" satisfies "actual > 10"`.
func (c *Comparator) Describe(actual any) string {
	if c.name == exprName {
		return fmt.Sprintf("%v satisfies %q", actual, c.rhs)
	}
	return fmt.Sprintf("%v %s %v", actual, c.name, c.rhs)
}

// Eq matches values deeply equal to rhs.
func Eq(rhs any) *Comparator {
	return New("eq", func(a, r any) bool { return Equal(a, r) }, rhs)
}

// Ne matches values not deeply equal to rhs.
func Ne(rhs any) *Comparator {
	return New("ne", func(a, r any) bool { return !Equal(a, r) }, rhs)
}

// Gt matches numeric values strictly greater than rhs.
func Gt(rhs any) *Comparator { return ordered("gt", rhs, func(d int) bool { return d > 0 }) }

// Ge matches numeric values greater than or equal to rhs.
func Ge(rhs any) *Comparator { return ordered("ge", rhs, func(d int) bool { return d >= 0 }) }

// Lt matches numeric values strictly less than rhs.
func Lt(rhs any) *Comparator { return ordered("lt", rhs, func(d int) bool { return d < 0 }) }

// Le matches numeric values less than or equal to rhs.
func Le(rhs any) *Comparator { return ordered("le", rhs, func(d int) bool { return d <= 0 }) }

func ordered(name string, rhs any, accept func(int) bool) *Comparator {
	return New(name, func(a, r any) bool {
		d, ok := compareNumeric(a, r)
		return ok && accept(d)
	}, rhs)
}

// Contains matches strings that contain rhs as a substring.
func Contains(rhs string) *Comparator {
	return New("contains", func(a, r any) bool {
		s, ok := a.(string)
		return ok && strings.Contains(s, r.(string))
	}, rhs)
}

// HasPrefix matches strings that begin with rhs.
func HasPrefix(rhs string) *Comparator {
	return New("has_prefix", func(a, r any) bool {
		s, ok := a.(string)
		return ok && strings.HasPrefix(s, r.(string))
	}, rhs)
}

// HasSuffix matches strings that end with rhs.
func HasSuffix(rhs string) *Comparator {
	return New("has_suffix", func(a, r any) bool {
		s, ok := a.(string)
		return ok && strings.HasSuffix(s, r.(string))
	}, rhs)
}

// Matches matches strings against a regular expression. An invalid
// pattern produces a comparator that never matches.
func Matches(pattern string) *Comparator {
	re, err := regexp.Compile(pattern)
	return New("matches", func(a, _ any) bool {
		if err != nil {
			return false
		}
		s, ok := a.(string)
		return ok && re.MatchString(s)
	}, pattern)
}

// IsNil matches nil values, including typed nil pointers, slices and maps.
// Expectations use it to assert on a nil return value, since a literal
// nil expectation means "no expectation".
func IsNil() *Comparator {
	return New("is_nil", func(a, _ any) bool { return isNil(a) }, nil)
}

// Len matches strings, slices, arrays and maps whose length equals rhs.
func Len(n int) *Comparator {
	return New("len", func(a, r any) bool {
		v := reflect.ValueOf(a)
		switch v.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
			return v.Len() == r.(int)
		}
		return false
	}, n)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
