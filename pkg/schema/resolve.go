package schema

import (
	"fmt"

	"github.com/vouchlabs/vouch/pkg/compare"
	"github.com/vouchlabs/vouch/pkg/scenario"
	"github.com/vouchlabs/vouch/pkg/target"
)

// opNames lists every comparator operator a document may use, in the
// order exposed by the exported JSON schema.
var opNames = []string{
	"eq", "ne", "gt", "ge", "lt", "le",
	"contains", "has_prefix", "has_suffix", "matches",
	"len", "is_nil",
}

// Resolve turns a parsed document into runnable scenarios, looking up
// targets and error names in the given registry. It fails on the first
// scenario that cannot be resolved; run Validate first for a full
// report.
func Resolve(doc *Document, reg *target.Registry) (string, []scenario.Scenario, error) {
	suite, err := resolveSuite(doc.Suite, reg)
	if err != nil {
		return "", nil, err
	}

	out := make([]scenario.Scenario, 0, len(doc.Scenarios))
	for i, sd := range doc.Scenarios {
		sc, err := resolveScenario(sd, reg)
		if err != nil {
			return "", nil, fmt.Errorf("scenario %d (%s): %w", i, sd.Name, err)
		}
		out = append(out, sc)
	}
	return doc.Name, suite.Fill(out), nil
}

func resolveSuite(cd *CallDoc, reg *target.Registry) (scenario.Suite, error) {
	var s scenario.Suite
	if cd == nil {
		return s, nil
	}
	if cd.Target != "" {
		tgt, ok := reg.Lookup(cd.Target)
		if !ok {
			return s, fmt.Errorf("suite: unknown target %q", cd.Target)
		}
		s.Target = tgt
	}
	s.Method = cd.Method
	if args := constructArgs(cd); !args.IsZero() {
		s.Construct = &args
	}
	return s, nil
}

func resolveScenario(sd ScenarioDoc, reg *target.Registry) (scenario.Scenario, error) {
	sc := scenario.Scenario{Name: sd.Name}

	if sd.Call != nil {
		if sd.Call.Target != "" {
			tgt, ok := reg.Lookup(sd.Call.Target)
			if !ok {
				return sc, fmt.Errorf("unknown target %q", sd.Call.Target)
			}
			sc.Call.Target = tgt
		}
		sc.Call.Method = sd.Call.Method
		if args := constructArgs(sd.Call); !args.IsZero() {
			sc.Call.Construct = &args
		}
	}
	if len(sd.Args) > 0 {
		args := target.Args(sd.Args...)
		sc.Args = &args
	}

	exp, err := resolveExpectations(sd.Expect, reg)
	if err != nil {
		return sc, err
	}
	sc.Expect = exp
	return sc, nil
}

func constructArgs(cd *CallDoc) target.ArgList {
	var args target.ArgList
	if len(cd.Construct) > 0 {
		args.Positional = cd.Construct
	}
	if len(cd.Fields) > 0 {
		args.Named = cd.Fields
	}
	return args
}

func resolveExpectations(ed ExpectDoc, reg *target.Registry) (scenario.Expectations, error) {
	var exp scenario.Expectations
	var err error

	if exp.Return, err = resolveValue(ed.Return, "return"); err != nil {
		return exp, err
	}
	if exp.Stdout, err = resolveValue(ed.Stdout, "stdout"); err != nil {
		return exp, err
	}
	if exp.Stderr, err = resolveValue(ed.Stderr, "stderr"); err != nil {
		return exp, err
	}
	if exp.Mutates, err = resolveValue(ed.Mutates, "mutates"); err != nil {
		return exp, err
	}
	exp.Lives = ed.Lives
	exp.Dies = ed.Dies
	if ed.Throws != "" {
		sample, ok := reg.LookupError(ed.Throws)
		if !ok {
			return exp, fmt.Errorf("throws: unknown error %q", ed.Throws)
		}
		exp.Throws = sample
	}
	return exp, nil
}

func resolveValue(vd *ValueDoc, field string) (any, error) {
	if vd == nil {
		return nil, nil
	}
	if !vd.IsComparator() {
		return vd.Literal, nil
	}
	c, err := comparatorFor(vd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return c, nil
}

// comparatorFor maps a document comparator form onto pkg/compare.
func comparatorFor(vd *ValueDoc) (*compare.Comparator, error) {
	if vd.Expr != "" {
		return compare.FromExpr(vd.Expr)
	}
	switch vd.Op {
	case "eq":
		return compare.Eq(vd.Value), nil
	case "ne":
		return compare.Ne(vd.Value), nil
	case "gt":
		return compare.Gt(vd.Value), nil
	case "ge":
		return compare.Ge(vd.Value), nil
	case "lt":
		return compare.Lt(vd.Value), nil
	case "le":
		return compare.Le(vd.Value), nil
	case "contains":
		s, err := stringValue(vd)
		if err != nil {
			return nil, err
		}
		return compare.Contains(s), nil
	case "has_prefix":
		s, err := stringValue(vd)
		if err != nil {
			return nil, err
		}
		return compare.HasPrefix(s), nil
	case "has_suffix":
		s, err := stringValue(vd)
		if err != nil {
			return nil, err
		}
		return compare.HasSuffix(s), nil
	case "matches":
		s, err := stringValue(vd)
		if err != nil {
			return nil, err
		}
		return compare.Matches(s), nil
	case "len":
		n, ok := vd.Value.(int)
		if !ok {
			return nil, fmt.Errorf("op %q requires an integer value, got %T", vd.Op, vd.Value)
		}
		return compare.Len(n), nil
	case "is_nil":
		return compare.IsNil(), nil
	default:
		return nil, fmt.Errorf("unknown op %q", vd.Op)
	}
}

func stringValue(vd *ValueDoc) (string, error) {
	s, ok := vd.Value.(string)
	if !ok {
		return "", fmt.Errorf("op %q requires a string value, got %T", vd.Op, vd.Value)
	}
	return s, nil
}
