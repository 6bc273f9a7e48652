package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/vouchlabs/vouch/pkg/compare"
	"github.com/vouchlabs/vouch/pkg/target"
)

type calculator struct {
	base int
}

func newCalculator(base int) *calculator { return &calculator{base: base} }

func (c *calculator) Add(n int) int { return c.base + n }

var errDivideByZero = errors.New("divide by zero")

func testRegistry(t *testing.T) *target.Registry {
	t.Helper()
	reg := target.NewRegistry()
	if err := reg.Register(target.MustDefineFunc("Calculator", newCalculator)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterError("DivideByZero", errDivideByZero); err != nil {
		t.Fatalf("register error: %v", err)
	}
	return reg
}

func TestResolveDocument(t *testing.T) {
	doc, err := LoadFile("testdata/calculator.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	name, scs, err := Resolve(doc, testRegistry(t))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "calculator" {
		t.Errorf("name = %q", name)
	}
	if len(scs) != 5 {
		t.Fatalf("scenarios = %d, want 5", len(scs))
	}

	first := scs[0]
	if first.Call.Target == nil || first.Call.Target.Name() != "Calculator" {
		t.Fatal("suite target not filled in")
	}
	if first.Call.Method != "Add" {
		t.Errorf("method = %q", first.Call.Method)
	}
	if first.Expect.Return != 8 {
		t.Errorf("return expectation = %v", first.Expect.Return)
	}
	if !first.Expect.Lives {
		t.Error("lives not carried over")
	}

	if c, ok := scs[1].Expect.Return.(*compare.Comparator); !ok || c.Name() != "gt" {
		t.Errorf("comparator expectation = %#v", scs[1].Expect.Return)
	}
	if c, ok := scs[2].Expect.Return.(*compare.Comparator); !ok || !c.Compare(8) {
		t.Errorf("expression expectation = %#v", scs[2].Expect.Return)
	}

	div := scs[3]
	if div.Call.Method != "Div" {
		t.Errorf("per-scenario method override lost: %q", div.Call.Method)
	}
	if !div.Expect.Dies {
		t.Error("dies not carried over")
	}
	if !errors.Is(div.Expect.Throws.(error), errDivideByZero) {
		t.Errorf("throws = %#v", div.Expect.Throws)
	}

	announce := scs[4]
	if c, ok := announce.Expect.Stdout.(*compare.Comparator); !ok || !c.Compare("base is 5\n") {
		t.Errorf("stdout comparator = %#v", announce.Expect.Stdout)
	}
}

func TestResolveUnknownTarget(t *testing.T) {
	doc, err := Load(strings.NewReader(
		"name: d\nsuite: {target: Nope, method: M}\nscenarios:\n  - name: s\n    expect: {lives: true}\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, _, err = Resolve(doc, testRegistry(t))
	if err == nil || !strings.Contains(err.Error(), `unknown target "Nope"`) {
		t.Errorf("err = %v", err)
	}
}

func TestResolveUnknownError(t *testing.T) {
	doc, err := Load(strings.NewReader(
		"name: d\nsuite: {target: Calculator, method: Add}\nscenarios:\n  - name: s\n    expect: {throws: Nope}\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, _, err = Resolve(doc, testRegistry(t))
	if err == nil || !strings.Contains(err.Error(), `unknown error "Nope"`) {
		t.Errorf("err = %v", err)
	}
}

func TestResolveNamesFailingScenario(t *testing.T) {
	doc, err := Load(strings.NewReader(
		"name: d\nsuite: {target: Calculator, method: Add}\nscenarios:\n  - name: ok\n    expect: {lives: true}\n  - name: broken\n    expect:\n      return: {op: near, value: 1}\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, _, err = Resolve(doc, testRegistry(t))
	if err == nil || !strings.Contains(err.Error(), "scenario 1 (broken)") {
		t.Errorf("err = %v", err)
	}
}
