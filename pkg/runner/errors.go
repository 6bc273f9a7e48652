package runner

import (
	"errors"
	"fmt"
	"reflect"
)

// matchError reports whether a raised error matches a throws expectation.
// Sentinel errors match with errors.Is; typed samples match when any
// error in the unwrap chain is assignable to the sample's type, which
// preserves subtype-style semantics instead of exact class equality.
func matchError(err error, want any) bool {
	if err == nil || want == nil {
		return false
	}
	if wantErr, ok := want.(error); ok && errors.Is(err, wantErr) {
		return true
	}
	wt := reflect.TypeOf(want)
	for e := err; e != nil; e = errors.Unwrap(e) {
		if reflect.TypeOf(e).AssignableTo(wt) {
			return true
		}
	}
	return false
}

// errorName renders an error or error sample for check descriptions.
// Plain sentinel errors read better as their message; everything else
// uses the concrete type name.
func errorName(v any) string {
	if v == nil {
		return "none"
	}
	t := reflect.TypeOf(v)
	if t.String() == "*errors.errorString" {
		return fmt.Sprintf("%q", v)
	}
	return t.String()
}
