// Package scoring implements the weighted multi-factor priority engine:
// four per-task sub-scores (urgency, importance, effort, dependency
// impact) combined by strategy-selected weights, ranked, and explained.
package scoring

import "math"

// Strategy names a prioritization philosophy: a fixed weight vector over
// the four sub-scores.
type Strategy string

// Available strategies.
const (
	SmartBalance   Strategy = "smart_balance"
	FastestWins    Strategy = "fastest_wins"
	HighImpact     Strategy = "high_impact"
	DeadlineDriven Strategy = "deadline_driven"
)

// DefaultStrategy is used when the caller names no strategy or an unknown
// one; unknown names silently fall back rather than erroring.
const DefaultStrategy = SmartBalance

// Weights holds the multiplier for each scoring factor. The built-in
// vectors sum to 1.0; Normalize keeps that true for any custom vector.
type Weights struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// strategyWeights is the fixed strategy table.
var strategyWeights = map[Strategy]Weights{
	SmartBalance:   {Urgency: 0.30, Importance: 0.35, Effort: 0.15, Dependency: 0.20},
	FastestWins:    {Urgency: 0.15, Importance: 0.15, Effort: 0.55, Dependency: 0.15},
	HighImpact:     {Urgency: 0.15, Importance: 0.60, Effort: 0.10, Dependency: 0.15},
	DeadlineDriven: {Urgency: 0.60, Importance: 0.20, Effort: 0.05, Dependency: 0.15},
}

// Strategies returns the known strategy names in a stable order.
func Strategies() []Strategy {
	return []Strategy{SmartBalance, FastestWins, HighImpact, DeadlineDriven}
}

// ParseStrategy resolves a strategy name, falling back to DefaultStrategy
// for empty or unrecognized input.
func ParseStrategy(name string) Strategy {
	s := Strategy(name)
	if _, ok := strategyWeights[s]; !ok {
		return DefaultStrategy
	}
	return s
}

// WeightsFor returns the (normalized) weight vector for a strategy.
func WeightsFor(s Strategy) Weights {
	return strategyWeights[ParseStrategy(string(s))].Normalize()
}

// Normalize scales the weights to sum to 1.0. A zero vector becomes the
// uniform 0.25 split so scoring never divides by zero.
func (w Weights) Normalize() Weights {
	total := w.Urgency + w.Importance + w.Effort + w.Dependency
	if total == 0 {
		return Weights{Urgency: 0.25, Importance: 0.25, Effort: 0.25, Dependency: 0.25}
	}
	return Weights{
		Urgency:    w.Urgency / total,
		Importance: w.Importance / total,
		Effort:     w.Effort / total,
		Dependency: w.Dependency / total,
	}
}

// Rounded returns the weights rounded to two decimal places, the form
// echoed back to callers in weights_used.
func (w Weights) Rounded() Weights {
	return Weights{
		Urgency:    round2(w.Urgency),
		Importance: round2(w.Importance),
		Effort:     round2(w.Effort),
		Dependency: round2(w.Dependency),
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
