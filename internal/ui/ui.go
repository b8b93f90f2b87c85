// Package ui renders analysis output for the terminal. All output goes to
// stderr except machine-readable JSON, which commands write to stdout
// themselves.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/papapumpkin/triage/internal/scoring"
	"github.com/papapumpkin/triage/internal/task"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
)

// Printer writes human-readable command output.
type Printer struct{}

// New returns a Printer.
func New() *Printer {
	return &Printer{}
}

// Banner prints the program banner.
func (p *Printer) Banner() {
	fmt.Fprintln(os.Stderr, bold+cyan+"  triage"+reset+dim+" weighted task prioritizer"+reset)
	fmt.Fprintln(os.Stderr)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, red+bold+"error: "+reset+"%s\n", msg)
}

// Info prints a de-emphasized informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, dim+"%s"+reset+"\n", msg)
}

// AnalysisResult renders the ranked task table with per-task summaries,
// followed by validation and cycle warnings.
func (p *Printer) AnalysisResult(result *scoring.AnalysisResult) {
	fmt.Fprintf(os.Stderr, bold+"%d task(s), strategy %s"+reset+"\n\n",
		result.TotalTasks, magenta+string(result.StrategyUsed)+reset+bold)

	for _, st := range result.Tasks {
		scoreColor := scoreColorFor(st.PriorityScore)
		fmt.Fprintf(os.Stderr, "%2d. %s%-7.2f%s %s\n",
			st.Rank, scoreColor+bold, st.PriorityScore, reset, st.Title)
		fmt.Fprintf(os.Stderr, "    "+dim+"urgency %.0f · importance %.0f · effort %.0f · dependency %.0f"+reset+"\n",
			st.ComponentScores.Urgency, st.ComponentScores.Importance,
			st.ComponentScores.Effort, st.ComponentScores.Dependency)
		fmt.Fprintf(os.Stderr, "    "+dim+"%s"+reset+"\n", st.Explanations.Summary)
	}

	p.ValidationErrors(result.ValidationErrors)
	p.Cycles(result.CircularDependencies)
}

// SuggestionResult renders the top-task recommendations.
func (p *Printer) SuggestionResult(result *scoring.SuggestionResult) {
	fmt.Fprintln(os.Stderr, bold+result.Message+reset)
	fmt.Fprintln(os.Stderr)

	for _, sg := range result.Suggestions {
		fmt.Fprintf(os.Stderr, cyan+bold+"#%d"+reset+" %s "+dim+"(%.2f)"+reset+"\n",
			sg.Rank, sg.Task.Title, sg.PriorityScore)
		for _, reason := range sg.Reasons {
			fmt.Fprintf(os.Stderr, "    %s\n", reason)
		}
		fmt.Fprintf(os.Stderr, "    "+dim+"%s"+reset+"\n\n", sg.Recommendation)
	}

	if result.Warning != "" {
		fmt.Fprintln(os.Stderr, yellow+bold+"⚠ "+reset+yellow+result.Warning+reset)
	}
}

// ValidationErrors renders per-task validation problems, if any.
func (p *Printer) ValidationErrors(errs []task.ValidationError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n"+yellow+bold+"⚠ %d task(s) with validation problems"+reset+"\n", len(errs))
	for _, ve := range errs {
		fmt.Fprintf(os.Stderr, "  %s "+dim+"(index %d)"+reset+"\n", ve.TaskTitle, ve.TaskIndex)
		for _, msg := range ve.Errors {
			fmt.Fprintf(os.Stderr, "    - %s\n", msg)
		}
	}
}

// Cycles renders detected circular dependency chains, if any.
func (p *Printer) Cycles(cycles [][]string) {
	if len(cycles) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n"+red+bold+"⚠ %d circular dependency chain(s)"+reset+"\n", len(cycles))
	for _, cycle := range cycles {
		fmt.Fprintf(os.Stderr, "  %s\n", strings.Join(cycle, " → "))
	}
}

// StrategyTable renders the built-in strategy weight table.
func (p *Printer) StrategyTable() {
	fmt.Fprintln(os.Stderr, bold+"strategy          urgency importance effort dependency"+reset)
	for _, s := range scoring.Strategies() {
		w := scoring.WeightsFor(s)
		name := string(s)
		if s == scoring.DefaultStrategy {
			name += " *"
		}
		fmt.Fprintf(os.Stderr, "%-18s %s%.2f    %.2f       %.2f   %.2f%s\n",
			name, dim, w.Urgency, w.Importance, w.Effort, w.Dependency, reset)
	}
	fmt.Fprintln(os.Stderr, dim+"* default"+reset)
}

// WatchReload announces a re-analysis triggered by a file change.
func (p *Printer) WatchReload(file string) {
	fmt.Fprintf(os.Stderr, green+"↻ reloaded"+reset+dim+" %s"+reset+"\n", file)
}

// scoreColorFor picks a color band for a final priority score.
func scoreColorFor(score float64) string {
	switch {
	case score >= 90:
		return red
	case score >= 70:
		return yellow
	case score >= 50:
		return green
	default:
		return blue
	}
}
