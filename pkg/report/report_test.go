package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestRecorderNesting(t *testing.T) {
	r := NewRecorder()
	r.BeginGroup("batch", 2)
	r.BeginGroup("first", 1)
	r.Report(true, "first - return value")
	r.EndGroup()
	r.BeginGroup("second", 2)
	r.Report(false, "second - died")
	r.Note("second: untested return value 4")
	r.Report(true, "second - stdout")
	r.EndGroup()
	r.EndGroup()

	groups := r.Groups()
	if len(groups) != 1 || groups[0].Name != "batch" {
		t.Fatalf("unexpected top-level groups: %+v", groups)
	}
	batch := groups[0]
	if len(batch.Groups) != 2 {
		t.Fatalf("expected 2 subgroups, got %d", len(batch.Groups))
	}
	if batch.Groups[0].Passed() != true {
		t.Error("first group should pass")
	}
	if batch.Groups[1].Passed() != false {
		t.Error("second group should fail")
	}
	if len(batch.Groups[1].Notes) != 1 {
		t.Errorf("expected 1 note, got %d", len(batch.Groups[1].Notes))
	}

	s := r.Summarize()
	if s.Groups != 3 || s.Checks != 3 || s.Passed != 2 || s.Failed != 1 || s.Notes != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.AllPassed() {
		t.Error("summary with a failure must not report all passed")
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.BeginGroup("add", 2)
	c.Report(true, "add - return value")
	c.Report(false, "add - stdout")
	c.Note("invoking Calculator.Add")
	c.EndGroup()

	out := buf.String()
	for _, want := range []string{"add (2 checks)", "✓", "✗", "# invoking Calculator.Add"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	s := c.Summarize()
	if s.Checks != 2 || s.Passed != 1 || s.Failed != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestConsolePlanMismatchWarning(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.BeginGroup("short", 3)
	c.Report(true, "short - return value")
	c.EndGroup()
	if !strings.Contains(buf.String(), "planned 3 checks, ran 1") {
		t.Errorf("expected plan mismatch warning, got:\n%s", buf.String())
	}
}

func TestConsoleSubgroupsCountTowardParentPlan(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.BeginGroup("batch", 2)
	c.BeginGroup("one", 1)
	c.Report(true, "one - lived")
	c.EndGroup()
	c.BeginGroup("two", 1)
	c.Report(true, "two - lived")
	c.EndGroup()
	c.EndGroup()
	if strings.Contains(buf.String(), "planned") {
		t.Errorf("did not expect a plan warning:\n%s", buf.String())
	}
}

func TestTruncateLongDescriptions(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := truncate(long, 100)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis, got %q", got)
	}
}

func TestWriteTable(t *testing.T) {
	r := NewRecorder()
	r.BeginGroup("add", 1)
	r.Report(true, "add - return value")
	r.EndGroup()
	r.BeginGroup("div", 2)
	r.Report(true, "div - died")
	r.Report(false, "div - stderr")
	r.EndGroup()

	var buf bytes.Buffer
	WriteTable(&buf, r.Groups())
	out := buf.String()
	for _, want := range []string{"add", "div", "Total 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdown(t *testing.T) {
	r := NewRecorder()
	r.BeginGroup("add", 1)
	r.Report(true, "add - return value")
	r.EndGroup()
	r.BeginGroup("div", 1)
	r.Report(false, "div - died")
	r.EndGroup()

	md := Markdown("calculator", r.Groups())
	for _, want := range []string{"# calculator", "## add", "- [x] add - return value", "- [ ] div - died", "1 of 2 checks failed"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
