package task

import (
	"fmt"
	"strings"
)

// ValidationError collects the problems found in a single task. Validation
// is advisory: a task with errors is still scored using substituted
// defaults, so callers surface these alongside results rather than
// aborting.
type ValidationError struct {
	TaskIndex int      `json:"task_index"`
	TaskTitle string   `json:"task_title"`
	Errors    []string `json:"errors"`
}

// maxReasonableHours is the ceiling above which an estimate is flagged as
// suspect. The effort formula bottoms out long before this, so the value
// only feeds a warning, never the score.
const maxReasonableHours = 1000

// Validate checks every task in the batch and returns one ValidationError
// per task that has problems. An empty result means the batch is clean.
func Validate(tasks []Task) []ValidationError {
	var errs []ValidationError
	for i, t := range tasks {
		problems := validateOne(t)
		if len(problems) == 0 {
			continue
		}
		title := strings.TrimSpace(t.Title)
		if title == "" {
			title = fmt.Sprintf("Task %d", i)
		}
		errs = append(errs, ValidationError{
			TaskIndex: i,
			TaskTitle: title,
			Errors:    problems,
		})
	}
	return errs
}

// validateOne returns the list of problems for a single task. Absent
// optional fields are fine; only present-but-invalid values are flagged.
func validateOne(t Task) []string {
	var problems []string

	if strings.TrimSpace(t.Title) == "" {
		problems = append(problems, "title is required and cannot be empty")
	}

	if t.DueDate != "" {
		if _, ok := t.Due(); !ok {
			problems = append(problems, fmt.Sprintf("invalid due_date format: %q (want %s)", t.DueDate, DateLayout))
		}
	}

	if t.EstimatedHours != nil {
		switch h := *t.EstimatedHours; {
		case h <= 0:
			problems = append(problems, fmt.Sprintf("estimated_hours must be positive, got %g", h))
		case h > maxReasonableHours:
			problems = append(problems, fmt.Sprintf("estimated_hours %g seems unreasonably high", h))
		}
	}

	if t.Importance != nil {
		if imp := *t.Importance; imp < 1 || imp > 10 {
			problems = append(problems, fmt.Sprintf("importance must be between 1 and 10, got %d", imp))
		}
	}

	return problems
}
