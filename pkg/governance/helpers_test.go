package governance

import (
	"testing"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/decisionlog"
	"helmline-hq/meridian/pkg/portfolio"
)

// baselineScenario builds a feasible portfolio: two teams over four
// periods, two items with a satisfied dependency and ample headroom.
func baselineScenario() *portfolio.Scenario {
	return &portfolio.Scenario{
		ID:      "baseline",
		Name:    "Baseline",
		Horizon: 4,
		Teams: []portfolio.Team{
			{ID: "core", Name: "Core", Capacity: []int{10, 10, 10, 10}},
			{ID: "edge", Name: "Edge", Capacity: []int{8, 8, 8, 8}},
		},
		Items: []portfolio.ScheduledItem{
			{
				ID:          "alpha",
				StartPeriod: 0,
				Duration:    2,
				Allocations: []portfolio.TeamAllocation{
					{TeamID: "core", Period: 0, Tokens: 6},
					{TeamID: "core", Period: 1, Tokens: 4},
				},
			},
			{
				ID:           "beta",
				StartPeriod:  2,
				Duration:     2,
				Dependencies: []string{"alpha"},
				Allocations: []portfolio.TeamAllocation{
					{TeamID: "edge", Period: 2, Tokens: 5},
					{TeamID: "edge", Period: 3, Tokens: 5},
				},
			},
		},
	}
}

// newTestEngine builds an engine over the default evaluators with a
// fresh in-memory decision log.
func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *decisionlog.Log) {
	t.Helper()

	registry := constraints.DefaultRegistry(constraints.DefaultCapacityConfig(), constraints.DefaultBudgetConfig())
	log := decisionlog.New()

	engine, err := New(constraints.NewValidator(registry), log, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine, log
}

func intPtr(n int) *int {
	return &n
}
