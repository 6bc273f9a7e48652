package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders recorded groups as a markdown report document.
func Markdown(title string, groups []*Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	var s Summary
	for _, g := range groups {
		p, f := tally(g)
		s.Groups++
		s.Checks += p + f
		s.Passed += p
		s.Failed += f
	}
	verdict := "✅ all checks passed"
	if s.Failed > 0 {
		verdict = fmt.Sprintf("❌ %d of %d checks failed", s.Failed, s.Checks)
	}
	fmt.Fprintf(&b, "%s — %d groups, %d checks\n", verdict, s.Groups, s.Checks)

	for _, g := range groups {
		writeGroupMarkdown(&b, g, 2)
	}
	return b.String()
}

func writeGroupMarkdown(b *strings.Builder, g *Group, level int) {
	fmt.Fprintf(b, "\n%s %s\n\n", strings.Repeat("#", level), g.Name)
	for _, c := range g.Checks {
		mark := "[x]"
		if !c.Passed {
			mark = "[ ]"
		}
		fmt.Fprintf(b, "- %s %s\n", mark, c.Description)
	}
	for _, note := range g.Notes {
		fmt.Fprintf(b, "- _%s_\n", note)
	}
	for _, sub := range g.Groups {
		writeGroupMarkdown(b, sub, level+1)
	}
}

// RenderTerm renders a markdown report for terminal display.
func RenderTerm(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}
