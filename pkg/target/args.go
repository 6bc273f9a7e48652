package target

// ArgList is an ordered sequence of positional values plus a mapping of
// named values. Positional values bind to constructor or method
// parameters in order; named values set exported struct fields during
// construction (Go methods have no named parameters).
type ArgList struct {
	Positional []any
	Named      map[string]any
}

// Args builds a purely positional ArgList.
func Args(vals ...any) ArgList {
	return ArgList{Positional: vals}
}

// Fields builds a purely named ArgList.
func Fields(named map[string]any) ArgList {
	return ArgList{Named: named}
}

// IsZero reports whether the list carries no arguments at all.
func (a ArgList) IsZero() bool {
	return len(a.Positional) == 0 && len(a.Named) == 0
}
