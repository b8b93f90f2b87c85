package scoring

import (
	"math"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		in   string
		want Strategy
	}{
		{"smart_balance", SmartBalance},
		{"fastest_wins", FastestWins},
		{"high_impact", HighImpact},
		{"deadline_driven", DeadlineDriven},
		{"", SmartBalance},
		{"yolo", SmartBalance},
		{"Smart_Balance", SmartBalance}, // names are case-sensitive
	}
	for _, tc := range cases {
		if got := ParseStrategy(tc.in); got != tc.want {
			t.Errorf("ParseStrategy(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestWeightsSumToOne(t *testing.T) {
	for _, s := range Strategies() {
		w := WeightsFor(s)
		sum := w.Urgency + w.Importance + w.Effort + w.Dependency
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("%s weights sum to %v, want 1.0", s, sum)
		}
	}
}

func TestNormalize(t *testing.T) {
	w := Weights{Urgency: 2, Importance: 1, Effort: 1, Dependency: 0}.Normalize()
	if w.Urgency != 0.5 || w.Importance != 0.25 || w.Effort != 0.25 || w.Dependency != 0 {
		t.Errorf("Normalize = %+v", w)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	w := Weights{}.Normalize()
	want := Weights{Urgency: 0.25, Importance: 0.25, Effort: 0.25, Dependency: 0.25}
	if w != want {
		t.Errorf("Normalize(zero) = %+v, want uniform split", w)
	}
}

func TestStrategiesStableOrder(t *testing.T) {
	want := []Strategy{SmartBalance, FastestWins, HighImpact, DeadlineDriven}
	got := Strategies()
	if len(got) != len(want) {
		t.Fatalf("Strategies() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Strategies()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
