// Package tui provides an interactive terminal browser for analysis
// results: a ranked task table with a detail panel, live strategy
// switching, and on-demand reload of the underlying task file.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/triage/internal/scoring"
	"github.com/papapumpkin/triage/internal/task"
)

// Model is the root bubbletea model for the triage browser.
type Model struct {
	file     string
	tasks    []task.Task
	strategy scoring.Strategy
	result   *scoring.AnalysisResult
	err      error

	keys     KeyMap
	selected int
	detail   viewport.Model
	width    int
	height   int
	ready    bool
}

// NewModel creates a browser over the given task file and initial batch.
func NewModel(file string, tasks []task.Task, strategy string) Model {
	m := Model{
		file:     file,
		tasks:    tasks,
		strategy: scoring.ParseStrategy(strategy),
		keys:     DefaultKeyMap(),
	}
	m.analyze()
	return m
}

// analyze recomputes the result for the current batch and strategy.
func (m *Model) analyze() {
	engine := scoring.New(string(m.strategy))
	m.result, m.err = engine.Analyze(m.tasks)
	if m.selected >= m.taskCount() {
		m.selected = 0
	}
	m.refreshDetail()
}

func (m *Model) taskCount() int {
	if m.result == nil {
		return 0
	}
	return len(m.result.Tasks)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		detailHeight := m.height - m.taskCount() - 6
		if detailHeight < 5 {
			detailHeight = 5
		}
		if !m.ready {
			m.detail = viewport.New(m.width-4, detailHeight)
			m.ready = true
		} else {
			m.detail.Width = m.width - 4
			m.detail.Height = detailHeight
		}
		m.refreshDetail()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
				m.refreshDetail()
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < m.taskCount()-1 {
				m.selected++
				m.refreshDetail()
			}
		case key.Matches(msg, m.keys.Strategy):
			m.switchStrategy(msg.String())
		case key.Matches(msg, m.keys.Reload):
			if batch, err := task.LoadFile(m.file); err == nil {
				m.tasks = batch
				m.analyze()
			} else {
				m.err = err
			}
		default:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// switchStrategy maps the 1-4 keys onto the strategy table.
func (m *Model) switchStrategy(digit string) {
	all := scoring.Strategies()
	idx := int(digit[0] - '1')
	if idx < 0 || idx >= len(all) {
		return
	}
	m.strategy = all[idx]
	m.analyze()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return styleWarning.Render(fmt.Sprintf("error: %v", m.err)) + "\n" +
			styleDim.Render("r to retry, q to quit")
	}
	if m.result == nil {
		return styleDim.Render("no analysis yet")
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("triage") + " " +
		styleDim.Render(m.file) + "  " +
		styleStrategy.Render(string(m.strategy)) + "\n\n")

	for i, st := range m.result.Tasks {
		indicator := " "
		rowStyle := styleRow
		if i == m.selected {
			indicator = selectionIndicator
			rowStyle = styleSelected
		}
		score := scoreStyle(st.PriorityScore).Render(fmt.Sprintf("%7.2f", st.PriorityScore))
		b.WriteString(fmt.Sprintf("%s%2d. %s  %s\n",
			indicator, st.Rank, score, rowStyle.Render(st.Title)))
	}

	if n := len(m.result.CircularDependencies); n > 0 {
		b.WriteString("\n" + styleWarning.Render(
			fmt.Sprintf("⚠ %d circular dependency chain(s)", n)) + "\n")
	}

	if m.ready {
		b.WriteString("\n" + styleDetailBox.Render(m.detail.View()) + "\n")
	}
	b.WriteString(styleDim.Render("↑/↓ select · 1-4 strategy · r reload · q quit"))
	return b.String()
}

// refreshDetail rebuilds the detail panel for the selected task.
func (m *Model) refreshDetail() {
	if !m.ready || m.result == nil || m.taskCount() == 0 {
		return
	}
	st := m.result.Tasks[m.selected]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", styleSelected.Render(st.Title))
	rows := []struct {
		name  string
		score float64
		why   string
	}{
		{"urgency", st.ComponentScores.Urgency, st.Explanations.Urgency},
		{"importance", st.ComponentScores.Importance, st.Explanations.Importance},
		{"effort", st.ComponentScores.Effort, st.Explanations.Effort},
		{"dependency", st.ComponentScores.Dependency, st.Explanations.Dependency},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-11s %s  %s\n",
			r.name,
			scoreStyle(r.score).Render(fmt.Sprintf("%6.2f", r.score)),
			styleDim.Render(r.why))
	}
	fmt.Fprintf(&b, "\n%s\n", st.Explanations.Summary)
	fmt.Fprintf(&b, "%s\n", styleDim.Render(fmt.Sprintf(
		"weights: urgency %.2f · importance %.2f · effort %.2f · dependency %.2f",
		st.WeightsUsed.Urgency, st.WeightsUsed.Importance,
		st.WeightsUsed.Effort, st.WeightsUsed.Dependency)))

	m.detail.SetContent(lipgloss.NewStyle().Width(m.detail.Width).Render(b.String()))
}

// Run launches the TUI and blocks until the user quits.
func Run(file string, tasks []task.Task, strategy string) error {
	p := tea.NewProgram(NewModel(file, tasks, strategy), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
