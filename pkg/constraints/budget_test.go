package constraints

import (
	"testing"

	"helmline-hq/meridian/pkg/portfolio"
)

func budgetScenario(tokens int) *portfolio.Scenario {
	return &portfolio.Scenario{
		ID:      "budget",
		Horizon: 2,
		Teams: []portfolio.Team{
			{ID: "core", Capacity: []int{100, 100}},
		},
		Items: []portfolio.ScheduledItem{
			{ID: "a", StartPeriod: 0, Duration: 1, Allocations: []portfolio.TeamAllocation{
				{TeamID: "core", Period: 0, Tokens: tokens},
			}},
		},
	}
}

func TestBudgetNoCeilingNoFindings(t *testing.T) {
	result := NewBudgetEvaluator(DefaultBudgetConfig()).Evaluate(budgetScenario(1000))

	if len(result.Violations) != 0 || len(result.Warnings) != 0 {
		t.Errorf("no ceilings configured, expected no findings, got %+v", result)
	}
}

func TestBudgetScenarioCeiling(t *testing.T) {
	e := NewBudgetEvaluator(BudgetConfig{TotalTokens: 50, WarnThreshold: 0.8})

	tests := []struct {
		name          string
		tokens        int
		wantViolation bool
		wantWarning   bool
	}{
		{name: "under budget", tokens: 30},
		{name: "approaching budget", tokens: 45, wantWarning: true},
		{name: "at budget", tokens: 50, wantWarning: true},
		{name: "over budget", tokens: 51, wantViolation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Evaluate(budgetScenario(tt.tokens))
			if got := len(result.Violations) > 0; got != tt.wantViolation {
				t.Errorf("violations = %v, want violation=%v", result.Violations, tt.wantViolation)
			}
			if got := len(result.Warnings) > 0; got != tt.wantWarning {
				t.Errorf("warnings = %v, want warning=%v", result.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestBudgetPerItemCeiling(t *testing.T) {
	s := budgetScenario(10)
	s.Items = append(s.Items, portfolio.ScheduledItem{
		ID: "big", StartPeriod: 0, Duration: 1,
		Allocations: []portfolio.TeamAllocation{
			{TeamID: "core", Period: 0, Tokens: 25},
		},
	})

	result := NewBudgetEvaluator(BudgetConfig{PerItemTokens: 20}).Evaluate(s)

	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", result.Violations)
	}
	v := result.Violations[0]
	if len(v.ItemIDs) != 1 || v.ItemIDs[0] != "big" {
		t.Errorf("violation should cite the over-budget item, got %v", v.ItemIDs)
	}
}

func TestBudgetScenarioSpecOverridesConfig(t *testing.T) {
	// Evaluator default would violate; scenario declares a higher ceiling.
	s := budgetScenario(80)
	s.Budget = &portfolio.BudgetSpec{TotalTokens: 100}

	result := NewBudgetEvaluator(BudgetConfig{TotalTokens: 50}).Evaluate(s)

	if len(result.Violations) != 0 {
		t.Errorf("scenario budget spec must win over config, got %v", result.Violations)
	}
}

func TestBudgetWarningCarriesMetric(t *testing.T) {
	result := NewBudgetEvaluator(BudgetConfig{TotalTokens: 50, WarnThreshold: 0.8}).
		Evaluate(budgetScenario(45))

	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}
	w := result.Warnings[0]
	if w.Metric != "scenario_tokens" || w.Actual != 45 || w.Threshold != 40 {
		t.Errorf("warning = %+v, want scenario_tokens actual=45 threshold=40", w)
	}
}
