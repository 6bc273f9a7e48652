// Package tui implements the Bubble Tea terminal UI for watching a
// scenario batch run live.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vouchlabs/vouch/pkg/report"
	"github.com/vouchlabs/vouch/pkg/scenario"
)

// ScenarioState tracks the status of each scenario in the TUI.
type ScenarioState struct {
	Name     string
	Status   string // "pending", "running", "passed", "failed"
	Checks   []report.Check
	Failed   int
	Duration time.Duration
}

// Model is the Bubble Tea model for vouch-tui.
type Model struct {
	batch     string
	scenarios []ScenarioState
	selected  int
	spinner   spinner.Model
	summary   report.Summary
	status    string // "running", "done"
	err       error
	width     int
	height    int
}

// NewModel creates a TUI model from a scenario batch.
func NewModel(batch string, scenarios []scenario.Scenario) Model {
	states := make([]ScenarioState, 0, len(scenarios))
	for _, sc := range scenarios {
		states = append(states, ScenarioState{
			Name:   sc.Name,
			Status: "pending",
		})
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	return Model{
		batch:     batch,
		scenarios: states,
		spinner:   sp,
		status:    "running",
	}
}

// --- Messages ---

// scenarioStartMsg marks a scenario as running.
type scenarioStartMsg struct {
	Index int
}

// scenarioDoneMsg delivers one scenario's result.
type scenarioDoneMsg struct {
	Index    int
	Passed   bool
	Checks   []report.Check
	Failed   int
	Duration time.Duration
}

// runDoneMsg signals batch completion.
type runDoneMsg struct {
	Summary report.Summary
	Err     error
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.scenarios)-1 {
				m.selected++
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scenarioStartMsg:
		if msg.Index < len(m.scenarios) {
			m.scenarios[msg.Index].Status = "running"
		}

	case scenarioDoneMsg:
		m.applyScenarioDone(msg)

	case runDoneMsg:
		m.status = "done"
		m.summary = msg.Summary
		m.err = msg.Err
	}

	return m, nil
}

// applyScenarioDone updates one scenario's state from its result.
func (m *Model) applyScenarioDone(msg scenarioDoneMsg) {
	if msg.Index >= len(m.scenarios) {
		return
	}
	s := &m.scenarios[msg.Index]
	if msg.Passed {
		s.Status = "passed"
	} else {
		s.Status = "failed"
	}
	s.Checks = msg.Checks
	s.Failed = msg.Failed
	s.Duration = msg.Duration
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	b.WriteString(headerStyle.Render(fmt.Sprintf("  vouch-tui: %s", m.batch)))
	b.WriteString("\n\n")

	for i, s := range m.scenarios {
		icon := m.scenarioIcon(s.Status)

		line := fmt.Sprintf("  %s %s", icon, s.Name)
		if s.Status == "passed" || s.Status == "failed" {
			line += fmt.Sprintf("  %d/%d checks", len(s.Checks)-s.Failed, len(s.Checks))
			if s.Duration > 0 {
				line += fmt.Sprintf("  %s", s.Duration.Truncate(time.Millisecond))
			}
		}

		if i == m.selected {
			selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
			b.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	switch m.status {
	case "running":
		b.WriteString(statusStyle.Render("  Running..."))
	case "done":
		if m.err != nil {
			failStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
			b.WriteString(failStyle.Render(fmt.Sprintf("  ✗ Error: %v", m.err)))
		} else if m.summary.AllPassed() {
			passStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40"))
			b.WriteString(passStyle.Render(fmt.Sprintf("  ✓ %d checks passed", m.summary.Passed)))
		} else {
			failStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
			b.WriteString(failStyle.Render(fmt.Sprintf("  ✗ %d of %d checks failed", m.summary.Failed, m.summary.Checks)))
		}
	}

	// Check detail pane for the selected scenario.
	if m.selected < len(m.scenarios) {
		s := m.scenarios[m.selected]
		if len(s.Checks) > 0 {
			b.WriteString("\n\n")
			b.WriteString(statusStyle.Render(fmt.Sprintf("  Checks — %s:", s.Name)))
			b.WriteString("\n")
			for _, c := range s.Checks {
				mark := "✓"
				if !c.Passed {
					mark = "✗"
				}
				b.WriteString(fmt.Sprintf("    %s %s\n", mark, c.Description))
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render("  q: quit  ↑/↓: navigate"))

	return b.String()
}

func (m Model) scenarioIcon(status string) string {
	switch status {
	case "pending":
		return "○"
	case "running":
		return m.spinner.View()
	case "passed":
		return "✓"
	case "failed":
		return "✗"
	default:
		return "?"
	}
}
