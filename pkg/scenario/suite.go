package scenario

import "github.com/vouchlabs/vouch/pkg/target"

// Suite pre-fills repeated call parameters across scenarios so batches
// exercising one target do not repeat themselves. It is a pure data
// transformation: scenarios that already set a field keep it.
type Suite struct {
	Target    *target.Target
	Method    string
	Construct *target.ArgList
}

// Fill returns a copy of the scenarios with unset call fields populated
// from the suite defaults. The input slice is left untouched.
func (s Suite) Fill(scenarios []Scenario) []Scenario {
	out := make([]Scenario, len(scenarios))
	for i, sc := range scenarios {
		if sc.Call.Target == nil {
			sc.Call.Target = s.Target
		}
		if sc.Call.Method == "" {
			sc.Call.Method = s.Method
		}
		if sc.Call.Construct == nil {
			sc.Call.Construct = s.Construct
		}
		out[i] = sc
	}
	return out
}
