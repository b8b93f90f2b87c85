package scoring

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/papapumpkin/triage/internal/depgraph"
	"github.com/papapumpkin/triage/internal/task"
)

// ErrNoTasks is returned when an operation that needs at least one task is
// given an empty batch.
var ErrNoTasks = errors.New("no tasks provided")

// ComponentScores holds the four sub-scores before weighting.
type ComponentScores struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// Explanations holds the human-readable reason for each sub-score plus a
// synthesized summary of the dominant factors.
type Explanations struct {
	Urgency    string `json:"urgency"`
	Importance string `json:"importance"`
	Effort     string `json:"effort"`
	Dependency string `json:"dependency"`
	Summary    string `json:"summary"`
}

// ScoredTask is a task decorated with its computed priority. It exists
// only inside one analysis result; nothing is persisted between calls.
type ScoredTask struct {
	task.Task
	PriorityScore   float64         `json:"priority_score"`
	ComponentScores ComponentScores `json:"component_scores"`
	Explanations    Explanations    `json:"explanations"`
	WeightsUsed     Weights         `json:"weights_used"`
	Rank            int             `json:"rank"`
}

// AnalysisResult is the full outcome of one analysis call: every input
// task scored and ranked, validation and cycle warnings alongside.
type AnalysisResult struct {
	Tasks                []ScoredTask           `json:"tasks"`
	CircularDependencies [][]string             `json:"circular_dependencies"`
	ValidationErrors     []task.ValidationError `json:"validation_errors"`
	StrategyUsed         Strategy               `json:"strategy_used"`
	TotalTasks           int                    `json:"total_tasks"`
}

// Engine scores and ranks task batches under a fixed strategy. It holds
// no state across calls; every analysis is a pure function of its input
// and the injected clock.
type Engine struct {
	strategy Strategy
	weights  Weights
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow injects the clock used to resolve "today" for urgency scoring.
// Tests freeze time with this instead of relying on the wall clock.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine for the named strategy. Unknown names fall back
// to smart_balance.
func New(strategy string, opts ...Option) *Engine {
	e := &Engine{
		strategy: ParseStrategy(strategy),
		now:      time.Now,
	}
	e.weights = WeightsFor(e.strategy)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the resolved strategy the engine scores with.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Analyze validates the batch, detects dependency cycles, scores every
// task, and returns them sorted by priority with dense 1-based ranks.
// Invalid tasks are never dropped: they score with substituted defaults
// and their problems travel alongside the results. The only hard failure
// is an empty batch.
func (e *Engine) Analyze(tasks []task.Task) (*AnalysisResult, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	validationErrs := task.Validate(tasks)
	graph := depgraph.New(tasks)
	cycles := graph.Cycles()
	today := e.now()

	scored := make([]ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		scored = append(scored, e.scoreOne(t, graph, today))
	}

	// Stable: identical inputs produce exact ties, which keep input order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PriorityScore > scored[j].PriorityScore
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}

	return &AnalysisResult{
		Tasks:                scored,
		CircularDependencies: cycles,
		ValidationErrors:     validationErrs,
		StrategyUsed:         e.strategy,
		TotalTasks:           len(scored),
	}, nil
}

// scoreOne runs the four calculators for a single task and combines them
// into the weighted priority score.
func (e *Engine) scoreOne(t task.Task, g *depgraph.Graph, today time.Time) ScoredTask {
	urgency, urgencyWhy := urgencyScore(t, today)
	importance, importanceWhy := importanceScore(t)
	effort, effortWhy := effortScore(t)
	dependency, dependencyWhy := dependencyScore(t.Key(), g)

	priority := urgency*e.weights.Urgency +
		importance*e.weights.Importance +
		effort*e.weights.Effort +
		dependency*e.weights.Dependency

	return ScoredTask{
		Task:          t,
		PriorityScore: round2(priority),
		ComponentScores: ComponentScores{
			Urgency:    round2(urgency),
			Importance: round2(importance),
			Effort:     round2(effort),
			Dependency: round2(dependency),
		},
		Explanations: Explanations{
			Urgency:    urgencyWhy,
			Importance: importanceWhy,
			Effort:     effortWhy,
			Dependency: dependencyWhy,
			Summary:    summarize(urgency, importance, effort, dependency),
		},
		WeightsUsed: e.weights.Rounded(),
	}
}

// Summary thresholds: a factor must clear its bar to be named in the
// summary line.
const (
	summaryUrgency    = 75
	summaryImportance = 70
	summaryEffort     = 70
	summaryDependency = 40
)

// summarize names the factors that dominated a task's score.
func summarize(urgency, importance, effort, dependency float64) string {
	var factors []string
	if urgency >= summaryUrgency {
		factors = append(factors, "urgent deadline")
	}
	if importance >= summaryImportance {
		factors = append(factors, "high importance")
	}
	if effort >= summaryEffort {
		factors = append(factors, "quick win")
	}
	if dependency >= summaryDependency {
		factors = append(factors, "blocks other tasks")
	}
	if len(factors) == 0 {
		return "Standard priority - balanced factors"
	}
	return "Prioritized due to: " + strings.Join(factors, ", ")
}
