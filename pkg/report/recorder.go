package report

// Check is one recorded pass/fail result.
type Check struct {
	Passed      bool   `json:"passed"`
	Description string `json:"description"`
}

// Group is the recorded result of one check group.
type Group struct {
	Name    string   `json:"name"`
	Planned int      `json:"planned"`
	Checks  []Check  `json:"checks"`
	Notes   []string `json:"notes,omitempty"`
	Groups  []*Group `json:"groups,omitempty"`
}

// Passed reports whether every check in the group and its subgroups passed.
func (g *Group) Passed() bool {
	for _, c := range g.Checks {
		if !c.Passed {
			return false
		}
	}
	for _, sub := range g.Groups {
		if !sub.Passed() {
			return false
		}
	}
	return true
}

// Recorder is an in-memory reporter used by tests, the TUI and the MCP
// handlers. It preserves group nesting and arrival order.
type Recorder struct {
	Root  Group
	stack []*Group
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	r := &Recorder{}
	r.stack = []*Group{&r.Root}
	return r
}

func (r *Recorder) current() *Group {
	return r.stack[len(r.stack)-1]
}

// BeginGroup implements Reporter.
func (r *Recorder) BeginGroup(name string, planned int) {
	g := &Group{Name: name, Planned: planned}
	cur := r.current()
	cur.Groups = append(cur.Groups, g)
	r.stack = append(r.stack, g)
}

// Report implements Reporter.
func (r *Recorder) Report(passed bool, description string) {
	cur := r.current()
	cur.Checks = append(cur.Checks, Check{Passed: passed, Description: description})
}

// Note implements Reporter.
func (r *Recorder) Note(text string) {
	cur := r.current()
	cur.Notes = append(cur.Notes, text)
}

// EndGroup implements Reporter.
func (r *Recorder) EndGroup() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Groups returns the top-level recorded groups.
func (r *Recorder) Groups() []*Group {
	return r.Root.Groups
}

// Summarize aggregates counts across everything recorded so far.
func (r *Recorder) Summarize() Summary {
	var s Summary
	summarize(&r.Root, &s, true)
	return s
}

func summarize(g *Group, s *Summary, root bool) {
	if !root {
		s.Groups++
	}
	for _, c := range g.Checks {
		s.Checks++
		if c.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	s.Notes += len(g.Notes)
	for _, sub := range g.Groups {
		summarize(sub, s, false)
	}
}
