package scoring

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/triage/internal/depgraph"
	"github.com/papapumpkin/triage/internal/task"
)

// frozen is the reference "today" for urgency tests.
var frozen = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// dueIn formats a date the given number of days from frozen.
func dueIn(days int) string {
	return frozen.AddDate(0, 0, days).Format(task.DateLayout)
}

func TestUrgencyScore_Ladder(t *testing.T) {
	cases := []struct {
		name string
		due  string
		want float64
	}{
		{"today", dueIn(0), 95},
		{"tomorrow", dueIn(1), 85},
		{"two days", dueIn(2), 75},
		{"three days", dueIn(3), 75},
		{"four days", dueIn(4), 60},
		{"one week", dueIn(7), 60},
		{"eight days", dueIn(8), 40},
		{"two weeks", dueIn(14), 40},
		{"fifteen days", dueIn(15), 25},
		{"one month", dueIn(30), 25},
		{"far future", dueIn(45), 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := urgencyScore(task.Task{DueDate: tc.due}, frozen)
			if score != tc.want {
				t.Errorf("urgencyScore(due %s) = %v, want %v", tc.due, score, tc.want)
			}
		})
	}
}

func TestUrgencyScore_Overdue(t *testing.T) {
	score, why := urgencyScore(task.Task{DueDate: dueIn(-3)}, frozen)
	if score != 115 {
		t.Errorf("3 days overdue = %v, want 115", score)
	}
	if !strings.Contains(why, "OVERDUE by 3") {
		t.Errorf("explanation = %q, want overdue day count", why)
	}
}

func TestUrgencyScore_OverdueCeiling(t *testing.T) {
	// 100 + 11*5 = 155 would exceed the cap.
	score, _ := urgencyScore(task.Task{DueDate: dueIn(-11)}, frozen)
	if score != 150 {
		t.Errorf("11 days overdue = %v, want capped 150", score)
	}
	// Beyond the cap the score stays pinned.
	far, _ := urgencyScore(task.Task{DueDate: dueIn(-400)}, frozen)
	if far != 150 {
		t.Errorf("400 days overdue = %v, want 150", far)
	}
}

func TestUrgencyScore_NoDueDate(t *testing.T) {
	for _, due := range []string{"", "not-a-date", "2026/03/15"} {
		score, why := urgencyScore(task.Task{DueDate: due}, frozen)
		if score != 30 {
			t.Errorf("urgencyScore(due %q) = %v, want 30", due, score)
		}
		if why != "No due date set - moderate priority" {
			t.Errorf("explanation = %q", why)
		}
	}
}

func TestImportanceScore(t *testing.T) {
	cases := []struct {
		name   string
		rating *int
		want   float64
	}{
		{"minimal", intPtr(1), 10},
		{"medium", intPtr(5), 50},
		{"high", intPtr(8), 80},
		{"critical", intPtr(10), 100},
		{"missing defaults to 5", nil, 50},
		// Out-of-range ratings multiply through unchanged; validation
		// flags them but scoring does not clamp.
		{"over range", intPtr(12), 120},
		{"zero", intPtr(0), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := importanceScore(task.Task{Importance: tc.rating})
			if score != tc.want {
				t.Errorf("importanceScore = %v, want %v", score, tc.want)
			}
		})
	}
}

func TestEffortScore(t *testing.T) {
	cases := []struct {
		name  string
		hours *float64
		want  float64
	}{
		{"one hour", floatPtr(1), 80},
		{"three hours", floatPtr(3), 60},
		{"seven hours", floatPtr(7), 40},
		{"missing defaults to 1h", nil, 80},
		{"zero falls back to default", floatPtr(0), 80},
		{"negative falls back to default", floatPtr(-4), 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := effortScore(task.Task{EstimatedHours: tc.hours})
			if math.Abs(score-tc.want) > 1e-9 {
				t.Errorf("effortScore = %v, want %v", score, tc.want)
			}
		})
	}
}

func TestEffortScore_Bounds(t *testing.T) {
	lo, _ := effortScore(task.Task{EstimatedHours: floatPtr(5000)})
	if lo != 5 {
		t.Errorf("huge task = %v, want floor 5", lo)
	}
	hi, _ := effortScore(task.Task{EstimatedHours: floatPtr(0.001)})
	if hi > 100 {
		t.Errorf("tiny task = %v, want at most 100", hi)
	}
	// Sub-minimum hours are floored before the log, never above the cap.
	floored, _ := effortScore(task.Task{EstimatedHours: floatPtr(0.05)})
	want := 100 - math.Log2(minHours+1)*20
	if math.Abs(floored-want) > 1e-9 {
		t.Errorf("floored hours = %v, want %v", floored, want)
	}
}

func TestDependencyScore(t *testing.T) {
	// fix-db gates deploy and announce; announce also waits on deploy.
	g := depgraph.New([]task.Task{
		{ID: 1, Title: "fix-db"},
		{ID: 2, Title: "deploy", Dependencies: []int{1}},
		{ID: 3, Title: "announce", Dependencies: []int{1, 2}},
	})

	score, why := dependencyScore("1", g)
	if score != 40 {
		t.Errorf("dependencyScore(fix-db) = %v, want 40", score)
	}
	if why != "Blocks 2 other tasks" {
		t.Errorf("explanation = %q", why)
	}

	score, why = dependencyScore("3", g)
	if score != 0 {
		t.Errorf("dependencyScore(announce) = %v, want 0", score)
	}
	if why != "No dependent tasks" {
		t.Errorf("explanation = %q", why)
	}
}

func TestDependencyScore_Cap(t *testing.T) {
	tasks := []task.Task{{ID: 1, Title: "root"}}
	for i := 2; i <= 9; i++ {
		tasks = append(tasks, task.Task{ID: i, Dependencies: []int{1}})
	}
	g := depgraph.New(tasks)
	score, _ := dependencyScore("1", g)
	if score != 100 {
		t.Errorf("8 dependents = %v, want capped 100", score)
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, time.March, 15, 23, 59, 0, 0, time.UTC)
	early := time.Date(2026, time.March, 16, 0, 1, 0, 0, time.UTC)
	if got := daysBetween(late, early); got != 1 {
		t.Errorf("daysBetween across midnight = %d, want 1", got)
	}
	if got := daysBetween(early, late); got != -1 {
		t.Errorf("reversed = %d, want -1", got)
	}
}
