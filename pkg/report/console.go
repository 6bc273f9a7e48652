package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	groupStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// maxDescWidth keeps check lines readable on ordinary terminals.
const maxDescWidth = 100

// Console writes styled check results to a writer and keeps running
// tallies. Nested groups indent by depth.
type Console struct {
	w       io.Writer
	depth   int
	planned []int
	ran     []int
	summary Summary
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// BeginGroup implements Reporter. A subgroup counts as one entry toward
// its parent's plan, the way a batch plans one entry per scenario.
func (c *Console) BeginGroup(name string, planned int) {
	if n := len(c.ran); n > 0 {
		c.ran[n-1]++
	}
	fmt.Fprintf(c.w, "%s%s\n", c.indent(), groupStyle.Render(fmt.Sprintf("▶ %s (%d checks)", name, planned)))
	c.depth++
	c.planned = append(c.planned, planned)
	c.ran = append(c.ran, 0)
	c.summary.Groups++
}

// Report implements Reporter.
func (c *Console) Report(passed bool, description string) {
	if n := len(c.ran); n > 0 {
		c.ran[n-1]++
	}
	c.summary.Checks++
	desc := truncate(description, maxDescWidth)
	if passed {
		c.summary.Passed++
		fmt.Fprintf(c.w, "%s%s %s\n", c.indent(), passStyle.Render("✓"), desc)
		return
	}
	c.summary.Failed++
	fmt.Fprintf(c.w, "%s%s %s\n", c.indent(), failStyle.Render("✗"), failStyle.Render(desc))
}

// Note implements Reporter.
func (c *Console) Note(text string) {
	c.summary.Notes++
	fmt.Fprintf(c.w, "%s%s\n", c.indent(), noteStyle.Render("# "+text))
}

// EndGroup implements Reporter. A group that ran a different number of
// entries (checks plus direct subgroups) than it planned gets a warning.
func (c *Console) EndGroup() {
	if len(c.planned) == 0 {
		return
	}
	planned := c.planned[len(c.planned)-1]
	ran := c.ran[len(c.ran)-1]
	c.planned = c.planned[:len(c.planned)-1]
	c.ran = c.ran[:len(c.ran)-1]
	if ran != planned {
		fmt.Fprintf(c.w, "%s%s\n", c.indent(), warnStyle.Render(fmt.Sprintf("! planned %d checks, ran %d", planned, ran)))
	}
	if c.depth > 0 {
		c.depth--
	}
}

// Summarize returns the running tallies.
func (c *Console) Summarize() Summary { return c.summary }

func (c *Console) indent() string {
	s := ""
	for i := 0; i < c.depth; i++ {
		s += "  "
	}
	return s
}

// truncate shortens s to at most width display cells, appending an
// ellipsis when something was cut.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-1, "…")
}
