package governance

import (
	"testing"

	"helmline-hq/meridian/pkg/portfolio"
)

func TestWhatIfDelta(t *testing.T) {
	engine, log := newTestEngine(t)
	base := baselineScenario()

	result, err := engine.WhatIf(base, []WhatIfChange{
		{
			Label: "overload core",
			Request: ChangeRequest{
				Kind: ChangeAddItem,
				Item: &portfolio.ScheduledItem{
					ID:          "gamma",
					StartPeriod: 0,
					Duration:    1,
					Allocations: []portfolio.TeamAllocation{
						{TeamID: "core", Period: 0, Tokens: 5},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("WhatIf: %v", err)
	}

	if !result.Delta.FeasibleBefore || result.Delta.FeasibleAfter {
		t.Errorf("delta feasibility = %+v", result.Delta)
	}
	if result.Delta.ViolationsBefore != 0 || result.Delta.ViolationsAfter == 0 {
		t.Errorf("delta violations = %+v", result.Delta)
	}
	if result.Delta.MeanUtilizationAfter <= result.Delta.MeanUtilizationBefore {
		t.Errorf("mean utilization did not rise: %+v", result.Delta)
	}
	if len(result.Delta.AffectedItems) != 1 || result.Delta.AffectedItems[0] != "gamma" {
		t.Errorf("AffectedItems = %v", result.Delta.AffectedItems)
	}

	// Analysis only: no log entry and no base mutation.
	if log.Len() != 0 {
		t.Errorf("what-if logged %d entries", log.Len())
	}
	if base.Item("gamma") != nil {
		t.Error("what-if mutated the base scenario")
	}
}

func TestWhatIfSequentialChanges(t *testing.T) {
	engine, _ := newTestEngine(t)

	// The second change targets the item the first one adds, so changes
	// must stack.
	result, err := engine.WhatIf(baselineScenario(), []WhatIfChange{
		{
			Request: ChangeRequest{
				Kind: ChangeAddItem,
				Item: &portfolio.ScheduledItem{
					ID:          "gamma",
					StartPeriod: 0,
					Duration:    1,
					Allocations: []portfolio.TeamAllocation{
						{TeamID: "core", Period: 0, Tokens: 5},
					},
				},
			},
		},
		{
			Request: ChangeRequest{
				Kind:           ChangeMoveItem,
				ItemID:         "gamma",
				NewStartPeriod: intPtr(2),
			},
		},
	})
	if err != nil {
		t.Fatalf("WhatIf: %v", err)
	}

	if !result.Delta.FeasibleAfter {
		t.Error("moving gamma off the contested period should restore feasibility")
	}
	if got := result.Scenario.Item("gamma").StartPeriod; got != 2 {
		t.Errorf("gamma start = %d, want 2", got)
	}
}

func TestWhatIfProjectionFailure(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.WhatIf(baselineScenario(), []WhatIfChange{
		{Request: ChangeRequest{Kind: ChangeRemoveItem, ItemID: "missing"}},
	})
	if err == nil {
		t.Fatal("expected error for unprojectable change")
	}
}

func TestWhatIfNoChanges(t *testing.T) {
	engine, _ := newTestEngine(t)
	base := baselineScenario()

	result, err := engine.WhatIf(base, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Delta.FeasibleBefore != result.Delta.FeasibleAfter {
		t.Error("empty change list altered feasibility")
	}
	if result.Scenario == base {
		t.Error("result scenario must not alias the base")
	}
}
