// Package task defines the task input model shared by the scoring engine,
// the CLI, and the HTTP API. Tasks are supplied by the caller, validated
// (never rejected), and scored as-is; nothing here is persisted.
package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrNotList is returned when a batch payload is present but is not a JSON
// array. It is deliberately distinct from an empty list, which is a valid
// decode but an invalid analysis input.
var ErrNotList = errors.New("tasks must be a list")

// DateLayout is the calendar-date format accepted in due_date fields.
const DateLayout = "2006-01-02"

// Task is a single user-supplied task. All fields beyond Title are
// optional; the scoring engine substitutes defaults for missing or
// malformed values rather than rejecting the task.
type Task struct {
	ID             int      `json:"id" toml:"id"`
	Title          string   `json:"title" toml:"title"`
	DueDate        string   `json:"due_date,omitempty" toml:"due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" toml:"estimated_hours,omitempty"`
	Importance     *int     `json:"importance,omitempty" toml:"importance,omitempty"`
	Dependencies   []int    `json:"dependencies,omitempty" toml:"dependencies,omitempty"`
}

// Key returns the task's identifier as a string, used for graph nodes and
// title fallbacks.
func (t Task) Key() string {
	return strconv.Itoa(t.ID)
}

// Due parses the task's due date. The second return is false when no due
// date is set or the value does not parse; callers treat both the same way.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// List is a JSON-decodable task batch. Unmarshaling enforces that the
// payload is an array, so malformed requests fail with ErrNotList instead
// of a generic type error.
type List []Task

// UnmarshalJSON decodes a JSON array of tasks, returning ErrNotList when
// the payload is any other JSON value.
func (l *List) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: got %s", ErrNotList, jsonKind(trimmed))
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return err
	}
	*l = tasks
	return nil
}

// jsonKind names the JSON value type of a raw payload for error messages.
func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "nothing"
	}
	switch data[0] {
	case '{':
		return "an object"
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	case 'n':
		return "null"
	default:
		return "a number"
	}
}
