package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Summary aggregates check counts across groups.
type Summary struct {
	Groups int `json:"groups"`
	Checks int `json:"checks"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Notes  int `json:"notes,omitempty"`
}

// AllPassed reports whether every executed check passed.
func (s Summary) AllPassed() bool { return s.Failed == 0 }

// WriteTable renders a per-group summary table with totals.
func WriteTable(w io.Writer, groups []*Group) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Group", "Planned", "Ran", "Passed", "Failed"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	var planned, ran, passed, failed int
	for _, g := range groups {
		p, f := tally(g)
		r := p + f
		table.Append([]string{g.Name, fmt.Sprintf("%d", g.Planned), fmt.Sprintf("%d", r), fmt.Sprintf("%d", p), fmt.Sprintf("%d", f)})
		planned += g.Planned
		ran += r
		passed += p
		failed += f
	}
	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(groups)),
		fmt.Sprintf("%d", planned),
		fmt.Sprintf("%d", ran),
		fmt.Sprintf("%d", passed),
		fmt.Sprintf("%d", failed),
	})
	table.Render()
	fmt.Fprintf(w, "\n%s", buf.String())
}

// tally counts passed and failed checks in a group and its subgroups.
func tally(g *Group) (passed, failed int) {
	for _, c := range g.Checks {
		if c.Passed {
			passed++
		} else {
			failed++
		}
	}
	for _, sub := range g.Groups {
		p, f := tally(sub)
		passed += p
		failed += f
	}
	return passed, failed
}
