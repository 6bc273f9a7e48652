package compare

import (
	"strings"
	"testing"
)

func TestEqComparator(t *testing.T) {
	c := Eq(8)
	if !c.Compare(8) {
		t.Error("expected pass for eq 8")
	}
	if c.Compare(9) {
		t.Error("expected fail for eq 8 against 9")
	}
	if !c.Compare(int64(8)) {
		t.Error("expected pass for eq 8 against int64(8)")
	}
}

func TestOrderedComparators(t *testing.T) {
	cases := []struct {
		c      *Comparator
		actual any
		want   bool
	}{
		{Gt(10), 11, true},
		{Gt(10), 10, false},
		{Gt(10), "eleven", false},
		{Ge(10), 10, true},
		{Ge(10), 9, false},
		{Lt(10), 9, true},
		{Lt(10), 10, false},
		{Le(10), 10, true},
		{Le(10), 11, false},
		{Gt(10), 10.5, true},
	}
	for _, tc := range cases {
		if got := tc.c.Compare(tc.actual); got != tc.want {
			t.Errorf("%s against %v: got %v, want %v", tc.c.Name(), tc.actual, got, tc.want)
		}
	}
}

func TestStringComparators(t *testing.T) {
	if !Contains("world").Compare("hello world") {
		t.Error("expected pass for contains 'world'")
	}
	if Contains("missing").Compare("hello world") {
		t.Error("expected fail for contains 'missing'")
	}
	if Contains("x").Compare(42) {
		t.Error("expected fail for contains against non-string")
	}
	if !HasPrefix("hel").Compare("hello") {
		t.Error("expected pass for has_prefix 'hel'")
	}
	if !HasSuffix("llo").Compare("hello") {
		t.Error("expected pass for has_suffix 'llo'")
	}
	if !Matches(`status.*ok`).Compare("status: ok") {
		t.Error("expected pass for matches 'status.*ok'")
	}
	if Matches(`status.*ok`).Compare("status: error") {
		t.Error("expected fail for matches against 'status: error'")
	}
	if Matches(`[invalid`).Compare("anything") {
		t.Error("expected invalid pattern to never match")
	}
}

func TestIsNilComparator(t *testing.T) {
	c := IsNil()
	if !c.Compare(nil) {
		t.Error("expected pass for nil")
	}
	var p *int
	if !c.Compare(p) {
		t.Error("expected pass for typed nil pointer")
	}
	if c.Compare(0) {
		t.Error("expected fail for zero int")
	}
}

func TestLenComparator(t *testing.T) {
	if !Len(3).Compare([]int{1, 2, 3}) {
		t.Error("expected pass for len 3 slice")
	}
	if !Len(5).Compare("hello") {
		t.Error("expected pass for len 5 string")
	}
	if Len(2).Compare([]int{1, 2, 3}) {
		t.Error("expected fail for len 2 against 3-element slice")
	}
	if Len(0).Compare(42) {
		t.Error("expected fail for len against int")
	}
}

func TestCustomPredicate(t *testing.T) {
	even := New("even", func(a, _ any) bool {
		n, ok := a.(int)
		return ok && n%2 == 0
	}, nil)
	if !even.Compare(4) {
		t.Error("expected pass for even 4")
	}
	if even.Compare(5) {
		t.Error("expected fail for even 5")
	}
}

func TestDescribe(t *testing.T) {
	d := Gt(10).Describe(11)
	if d != "11 gt 10" {
		t.Errorf("unexpected description %q", d)
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"ints", 8, 8, true},
		{"int vs int64", 8, int64(8), true},
		{"int vs float", 8, 8.0, true},
		{"mismatched numbers", 8, 9, false},
		{"strings", "a", "a", true},
		{"string vs int", "8", 8, false},
		{"nils", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"slices", []int{1, 2}, []int{1, 2}, true},
		{"slice vs any slice", []int{1, 2}, []any{1, 2}, true},
		{"slice length mismatch", []int{1}, []int{1, 2}, false},
		{"nested slices", []any{[]int{1}}, []any{[]any{1}}, true},
		{"maps", map[string]int{"a": 1}, map[string]any{"a": 1}, true},
		{"map value mismatch", map[string]int{"a": 1}, map[string]any{"a": 2}, false},
		{"map key mismatch", map[string]int{"a": 1}, map[string]any{"b": 1}, false},
		{"pointer deref", ptr(8), 8, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b); got != tc.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func ptr(n int) *int { return &n }

func TestFromExpr(t *testing.T) {
	c, err := FromExpr(`actual > 10`)
	if err != nil {
		t.Fatalf("FromExpr failed: %v", err)
	}
	if !c.Compare(11) {
		t.Error("expected pass for actual > 10 against 11")
	}
	if c.Compare(9) {
		t.Error("expected fail for actual > 10 against 9")
	}
}

func TestFromExprStrings(t *testing.T) {
	c, err := FromExpr(`actual contains "abc"`)
	if err != nil {
		t.Fatalf("FromExpr failed: %v", err)
	}
	if !c.Compare("xxabcxx") {
		t.Error("expected pass for contains expression")
	}
	if c.Compare("nothing") {
		t.Error("expected fail for contains expression")
	}
}

func TestFromExprCompileError(t *testing.T) {
	_, err := FromExpr(`actual >`)
	if err == nil {
		t.Fatal("expected compile error for malformed expression")
	}
	if !strings.Contains(err.Error(), "compile expression") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestFromExprDescribe(t *testing.T) {
	c, err := FromExpr(`actual > 10`)
	if err != nil {
		t.Fatalf("FromExpr failed: %v", err)
	}
	d := c.Describe(11)
	if !strings.Contains(d, "satisfies") || !strings.Contains(d, "actual > 10") {
		t.Errorf("unexpected description %q", d)
	}
}
