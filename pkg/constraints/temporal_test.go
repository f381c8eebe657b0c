package constraints

import (
	"testing"

	"helmline-hq/meridian/pkg/portfolio"
)

func horizonScenario(start, duration int) *portfolio.Scenario {
	return &portfolio.Scenario{
		ID:      "horizon",
		Horizon: 4,
		Items: []portfolio.ScheduledItem{
			{ID: "x", StartPeriod: start, Duration: duration},
		},
	}
}

func TestTemporalFit(t *testing.T) {
	e := NewTemporalEvaluator()

	tests := []struct {
		name        string
		start       int
		duration    int
		wantViolate bool
	}{
		{name: "extends past horizon", start: 3, duration: 2, wantViolate: true},
		{name: "fits exactly", start: 1, duration: 3, wantViolate: false},
		{name: "fills entire horizon", start: 0, duration: 4, wantViolate: false},
		{name: "starts before horizon", start: -1, duration: 2, wantViolate: true},
		{name: "far past horizon", start: 5, duration: 1, wantViolate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Evaluate(horizonScenario(tt.start, tt.duration))
			got := len(result.Violations) > 0
			if got != tt.wantViolate {
				t.Errorf("violations = %v, want violation=%v", result.Violations, tt.wantViolate)
			}
		})
	}
}

func TestTemporalViolationCitesOutsidePeriods(t *testing.T) {
	// horizon=4, start=3, duration=2 occupies period 4 outside [0,4).
	result := NewTemporalEvaluator().Evaluate(horizonScenario(3, 2))

	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", result.Violations)
	}
	v := result.Violations[0]
	if len(v.ItemIDs) != 1 || v.ItemIDs[0] != "x" {
		t.Errorf("ItemIDs = %v, want [x]", v.ItemIDs)
	}
	if len(v.Periods) != 1 || v.Periods[0] != 4 {
		t.Errorf("Periods = %v, want [4]", v.Periods)
	}
}

func TestTemporalNegativeStartCitesNegativePeriods(t *testing.T) {
	result := NewTemporalEvaluator().Evaluate(horizonScenario(-2, 1))

	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", result.Violations)
	}
	v := result.Violations[0]
	if len(v.Periods) != 2 || v.Periods[0] != -2 || v.Periods[1] != -1 {
		t.Errorf("Periods = %v, want [-2 -1]", v.Periods)
	}
}
