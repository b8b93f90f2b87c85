package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // cyan, primary accent
	colorAccent  = lipgloss.Color("#FFD700") // gold, attention
	colorSuccess = lipgloss.Color("#00E676") // green, low pressure
	colorDanger  = lipgloss.Color("#FF5252") // red, overdue/critical
	colorMuted   = lipgloss.Color("#636363") // gray, de-emphasized
	colorWhite   = lipgloss.Color("#EEEEEE") // off-white, primary text
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleStrategy = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	styleRow = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleScoreHot = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleScoreWarm = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleScoreCool = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorDanger)

	styleDetailBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// scoreStyle picks a style band for a priority score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 90:
		return styleScoreHot
	case score >= 60:
		return styleScoreWarm
	default:
		return styleScoreCool
	}
}
