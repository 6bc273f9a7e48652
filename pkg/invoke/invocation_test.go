package invoke

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vouchlabs/vouch/pkg/target"
)

type calculator struct {
	base int
}

func newCalculator(base int) *calculator {
	return &calculator{base: base}
}

func (c *calculator) Add(n int) int { return c.base + n }

func (c *calculator) Div(n int) (int, error) {
	if n == 0 {
		return 0, errors.New("division by zero")
	}
	return c.base / n, nil
}

func (c *calculator) Sum(ns ...int) int {
	total := c.base
	for _, n := range ns {
		total += n
	}
	return total
}

func (c *calculator) Pair() (int, int) { return c.base, c.base * 2 }

func (c *calculator) Greet() { fmt.Println("hello") }

func calcTarget(t *testing.T) *target.Target {
	t.Helper()
	tgt, err := target.DefineFunc("Calculator", newCalculator)
	if err != nil {
		t.Fatalf("DefineFunc failed: %v", err)
	}
	return tgt
}

func TestCallAddsBaseAndArgument(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(5),
		Method:        "Add",
		Args:          target.Args(3),
	}
	got, err := inv.Call()
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got != 8 {
		t.Errorf("expected 8, got %v", got)
	}
}

func TestSetArgsOverridesDefaults(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(5),
		Method:        "Add",
		Args:          target.Args(1),
	}
	inv.SetArgs(target.Args(10))
	got, err := inv.Call()
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got != 15 {
		t.Errorf("expected 15, got %v", got)
	}
}

func TestCallPropagatesMethodError(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(5),
		Method:        "Div",
		Args:          target.Args(0),
	}
	_, err := inv.Call()
	if err == nil || err.Error() != "division by zero" {
		t.Fatalf("expected division error unchanged, got %v", err)
	}
}

func TestCallSplitsTrailingError(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(10),
		Method:        "Div",
		Args:          target.Args(2),
	}
	got, err := inv.Call()
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
}

func TestCallVariadic(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(1),
		Method:        "Sum",
		Args:          target.Args(2, 3, 4),
	}
	got, err := inv.Call()
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
}

func TestCallMultipleResults(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(3),
		Method:        "Pair",
	}
	got, err := inv.Call()
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	vals, ok := got.([]any)
	if !ok || len(vals) != 2 || vals[0] != 3 || vals[1] != 6 {
		t.Errorf("expected [3 6], got %v", got)
	}
}

func TestCallNoResults(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(0),
		Method:        "Greet",
	}
	got, err := inv.Call()
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result, got %v", got)
	}
}

func TestCallUnknownMethod(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(0),
		Method:        "Nope",
	}
	_, err := inv.Call()
	if err == nil || !strings.Contains(err.Error(), "no method") {
		t.Fatalf("expected unknown-method error, got %v", err)
	}
}

func TestCallRejectsNamedArgs(t *testing.T) {
	inv := &Invocation{
		Target:        calcTarget(t),
		ConstructArgs: target.Args(0),
		Method:        "Add",
		Args:          target.Fields(map[string]any{"n": 1}),
	}
	_, err := inv.Call()
	if err == nil || !strings.Contains(err.Error(), "named arguments") {
		t.Fatalf("expected named-args error, got %v", err)
	}
}

func TestCallConstructErrorPropagates(t *testing.T) {
	tgt, err := target.DefineFunc("Checked", func(n int) (*calculator, error) {
		if n < 0 {
			return nil, errors.New("bad base")
		}
		return &calculator{base: n}, nil
	})
	if err != nil {
		t.Fatalf("DefineFunc failed: %v", err)
	}
	inv := &Invocation{Target: tgt, ConstructArgs: target.Args(-1), Method: "Add", Args: target.Args(0)}
	if _, err := inv.Call(); err == nil || err.Error() != "bad base" {
		t.Fatalf("expected constructor error unchanged, got %v", err)
	}
}

func TestCallMethodOnValueInstance(t *testing.T) {
	// Pointer-receiver methods must resolve even when the instance is a value.
	got, err := CallMethod(calculator{base: 2}, "Add", target.Args(3))
	if err != nil {
		t.Fatalf("CallMethod failed: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
}

func TestCallMethodUnknownOnValue(t *testing.T) {
	type point struct{ X, Y int }
	if _, err := CallMethod(point{X: 1, Y: 2}, "Norm", target.ArgList{}); err == nil {
		t.Fatal("expected unknown-method error for method-less struct")
	}
}
