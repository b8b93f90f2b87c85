package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/papapumpkin/triage/internal/depgraph"
	"github.com/papapumpkin/triage/internal/task"
)

// Scoring defaults substituted for missing or malformed fields. The
// original record is never mutated; substitution happens at scoring time.
const (
	defaultImportance = 5
	defaultHours      = 1.0
	minHours          = 0.1 // log2 domain floor
)

// urgencyBracket is one rung of the urgency ladder: the first bracket
// whose Within bound admits the day count wins.
type urgencyBracket struct {
	within  int // inclusive upper bound on days until due
	score   float64
	explain func(days int) string
}

// urgencyLadder maps days-until-due to a score, evaluated top to bottom.
// Overdue and no-date cases are handled before the ladder is consulted.
var urgencyLadder = []urgencyBracket{
	{0, 95, func(int) string { return "Due TODAY - very high urgency" }},
	{1, 85, func(int) string { return "Due TOMORROW - high urgency" }},
	{3, 75, func(d int) string { return fmt.Sprintf("Due in %d days - urgent", d) }},
	{7, 60, func(d int) string { return fmt.Sprintf("Due in %d days - approaching deadline", d) }},
	{14, 40, func(d int) string { return fmt.Sprintf("Due in %d days - moderate urgency", d) }},
	{30, 25, func(d int) string { return fmt.Sprintf("Due in %d days - low urgency", d) }},
}

// urgencyScore rates time pressure on [0, 150]. Scores above 100 are
// reserved for overdue tasks so they always outrank anything still in the
// future, capped at 150 to bound the penalty. Tasks without a parseable
// due date sit at 30 to keep them from being postponed forever.
func urgencyScore(t task.Task, today time.Time) (float64, string) {
	due, ok := t.Due()
	if !ok {
		return 30, "No due date set - moderate priority"
	}

	days := daysBetween(today, due)
	if days < 0 {
		overdue := -days
		score := math.Min(150, 100+float64(overdue)*5)
		return score, fmt.Sprintf("OVERDUE by %d day(s) - critical priority", overdue)
	}
	for _, b := range urgencyLadder {
		if days <= b.within {
			return b.score, b.explain(days)
		}
	}
	return 10, fmt.Sprintf("Due in %d days - not urgent", days)
}

// importanceScore maps the 1-10 rating linearly onto 10-100. A missing
// rating scores as 5; a present out-of-range rating multiplies through
// unchanged (validation flags it, scoring does not clamp it).
func importanceScore(t task.Task) (float64, string) {
	rating := defaultImportance
	if t.Importance != nil {
		rating = *t.Importance
	}
	score := float64(rating) * 10

	var level string
	switch {
	case rating >= 9:
		level = "Critical importance"
	case rating >= 7:
		level = "High importance"
	case rating >= 5:
		level = "Medium importance"
	case rating >= 3:
		level = "Low importance"
	default:
		level = "Minimal importance"
	}
	return score, fmt.Sprintf("%s (%d/10)", level, rating)
}

// effortScore rewards quick wins with an inverse logarithmic scale,
// bounded to [5, 100]: the gap between a 1h and 2h task is larger than
// between a 20h and 21h task.
func effortScore(t task.Task) (float64, string) {
	hours := defaultHours
	if t.EstimatedHours != nil && *t.EstimatedHours > 0 {
		hours = *t.EstimatedHours
	}
	if hours < minHours {
		hours = minHours
	}

	score := 100 - math.Log2(hours+1)*20
	score = math.Max(5, math.Min(100, score))

	var level string
	switch {
	case hours < 1:
		level = "Quick win - under 1 hour"
	case hours <= 2:
		level = fmt.Sprintf("Short task - %.1f hours", hours)
	case hours <= 4:
		level = fmt.Sprintf("Medium task - %.1f hours", hours)
	case hours <= 8:
		level = fmt.Sprintf("Half-day task - %.1f hours", hours)
	default:
		level = fmt.Sprintf("Large task - %.1f hours", hours)
	}
	return score, level
}

// dependencyScore surfaces tasks that gate many others, regardless of
// their own deadline or size: 20 points per transitively blocked task,
// capped at 100.
func dependencyScore(id string, g *depgraph.Graph) (float64, string) {
	blocking := g.BlockingCount(id)
	score := math.Min(100, float64(blocking)*20)

	switch blocking {
	case 0:
		return score, "No dependent tasks"
	case 1:
		return score, "Blocks 1 other task"
	default:
		return score, fmt.Sprintf("Blocks %d other tasks", blocking)
	}
}

// daysBetween counts whole days from a to b after stripping both to their
// calendar dates. Dates are rebuilt in UTC so the count is immune to
// DST-length days.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
