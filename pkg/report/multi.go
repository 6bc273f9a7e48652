package report

// Multi fans every reporter call out to all of the given reporters, so
// a run can feed a live console and a recorder at the same time.
func Multi(reps ...Reporter) Reporter {
	return multi(reps)
}

type multi []Reporter

func (m multi) BeginGroup(name string, planned int) {
	for _, r := range m {
		r.BeginGroup(name, planned)
	}
}

func (m multi) Report(passed bool, description string) {
	for _, r := range m {
		r.Report(passed, description)
	}
}

func (m multi) Note(text string) {
	for _, r := range m {
		r.Note(text)
	}
}

func (m multi) EndGroup() {
	for _, r := range m {
		r.EndGroup()
	}
}
