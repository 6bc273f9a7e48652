package target

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps document-level names onto resolved targets and error
// values, so YAML scenario files can reference Go types and error types
// by name.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]*Target
	errs    map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]*Target),
		errs:    make(map[string]any),
	}
}

// Register adds a target under its own name. Duplicate names are a
// registration fault.
func (r *Registry) Register(t *Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.targets[t.Name()]; exists {
		return fmt.Errorf("target %q is already registered", t.Name())
	}
	r.targets[t.Name()] = t
	return nil
}

// RegisterError adds an error under a document-level name. The value may
// be a sentinel error (matched with errors.Is) or a typed sample value
// (matched against the unwrap chain by type).
func (r *Registry) RegisterError(name string, sample any) error {
	if sample == nil {
		return fmt.Errorf("error %q: sample must not be nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.errs[name]; exists {
		return fmt.Errorf("error %q is already registered", name)
	}
	r.errs[name] = sample
	return nil
}

// Lookup finds a registered target by name.
func (r *Registry) Lookup(name string) (*Target, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.targets[name]
	return t, ok
}

// LookupError finds a registered error by name.
func (r *Registry) LookupError(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.errs[name]
	return e, ok
}

// Targets returns the sorted names of all registered targets.
func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the CLI, TUI and MCP
// surfaces. Library embedders typically register their types here from
// an init function or early in main.
func Default() *Registry { return defaultRegistry }

// Register adds a target to the default registry.
func Register(t *Target) error { return defaultRegistry.Register(t) }

// RegisterError adds an error to the default registry.
func RegisterError(name string, sample any) error {
	return defaultRegistry.RegisterError(name, sample)
}
