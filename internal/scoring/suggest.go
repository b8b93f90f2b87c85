package scoring

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/triage/internal/task"
)

// ErrBadCount is returned when a suggestion request asks for zero or a
// negative number of tasks.
var ErrBadCount = errors.New("count must be positive")

// DefaultSuggestCount is how many tasks Suggest recommends when the
// caller does not say.
const DefaultSuggestCount = 3

// Suggestion is one recommended task with its reasoning spelled out.
type Suggestion struct {
	Rank            int             `json:"rank"`
	Task            task.Task       `json:"task"`
	PriorityScore   float64         `json:"priority_score"`
	Recommendation  string          `json:"recommendation"`
	Reasons         []string        `json:"reasons"`
	ComponentScores ComponentScores `json:"component_scores"`
}

// SuggestionResult is the outcome of a suggest call: the top tasks to
// work on next, with an advisory warning when the batch contains
// dependency cycles.
type SuggestionResult struct {
	Suggestions        []Suggestion `json:"suggestions"`
	StrategyUsed       Strategy     `json:"strategy_used"`
	TotalTasksAnalyzed int          `json:"total_tasks_analyzed"`
	Warning            string       `json:"warning,omitempty"`
	Message            string       `json:"message"`
}

// Reason thresholds: a factor appears in a suggestion's reason list only
// above its bar. Urgency has a second, softer tier so approaching
// deadlines still get a mention.
const (
	reasonUrgencyHigh     = 75
	reasonUrgencyModerate = 50
	reasonImportance      = 70
	reasonEffort          = 70
	reasonDependency      = 20
)

// Suggest analyzes the batch and returns the min(count, N) top-ranked
// tasks, each decorated with threshold-gated reasons and a rank-dependent
// recommendation. count ≤ 0 is a hard failure; an unknown strategy is not.
func (e *Engine) Suggest(tasks []task.Task, count int) (*SuggestionResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCount, count)
	}

	analysis, err := e.Analyze(tasks)
	if err != nil {
		return nil, err
	}

	top := analysis.Tasks
	if len(top) > count {
		top = top[:count]
	}

	suggestions := make([]Suggestion, 0, len(top))
	for i, st := range top {
		suggestions = append(suggestions, Suggestion{
			Rank:            i + 1,
			Task:            st.Task,
			PriorityScore:   st.PriorityScore,
			Recommendation:  recommend(i+1, st),
			Reasons:         reasons(st),
			ComponentScores: st.ComponentScores,
		})
	}

	var warning string
	if n := len(analysis.CircularDependencies); n > 0 {
		warning = fmt.Sprintf("Warning: %d circular dependency chain(s) detected", n)
	}

	return &SuggestionResult{
		Suggestions:        suggestions,
		StrategyUsed:       analysis.StrategyUsed,
		TotalTasksAnalyzed: analysis.TotalTasks,
		Warning:            warning,
		Message: fmt.Sprintf("Here are your top %d tasks to focus on today (%s strategy):",
			len(suggestions), analysis.StrategyUsed),
	}, nil
}

// reasons collects the marker-prefixed factors that earned the task its
// place. When nothing clears a bar, the summary line stands in.
func reasons(st ScoredTask) []string {
	var out []string
	scores, why := st.ComponentScores, st.Explanations

	switch {
	case scores.Urgency >= reasonUrgencyHigh:
		out = append(out, "[urgent] "+why.Urgency)
	case scores.Urgency >= reasonUrgencyModerate:
		out = append(out, "[soon] "+why.Urgency)
	}
	if scores.Importance >= reasonImportance {
		out = append(out, "[important] "+why.Importance)
	}
	if scores.Effort >= reasonEffort {
		out = append(out, "[quick] "+why.Effort)
	}
	if scores.Dependency >= reasonDependency {
		out = append(out, "[unblocks] "+why.Dependency)
	}

	if len(out) == 0 {
		out = append(out, why.Summary)
	}
	return out
}

// recommend builds the rank-dependent recommendation sentence, closing
// with the task's factor summary.
func recommend(rank int, st ScoredTask) string {
	var lead string
	switch rank {
	case 1:
		lead = fmt.Sprintf("Start with %q - it is your top priority", st.Title)
	case 2:
		lead = fmt.Sprintf("Tackle %q after completing the first task", st.Title)
	default:
		lead = fmt.Sprintf("Work on %q when you have capacity", st.Title)
	}
	return fmt.Sprintf("%s. %s", lead, st.Explanations.Summary)
}
