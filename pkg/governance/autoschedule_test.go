package governance

import (
	"testing"

	"helmline-hq/meridian/pkg/portfolio"
)

func TestAutoScheduleResolvesOverload(t *testing.T) {
	engine, log := newTestEngine(t)
	base := baselineScenario()
	base.Items = append(base.Items, portfolio.ScheduledItem{
		ID:          "gamma",
		StartPeriod: 0,
		Duration:    1,
		Allocations: []portfolio.TeamAllocation{
			{TeamID: "core", Period: 0, Tokens: 5},
		},
	})

	result, err := engine.AutoSchedule(base)
	if err != nil {
		t.Fatalf("AutoSchedule: %v", err)
	}

	if !result.Result.Feasible {
		t.Fatalf("rescheduled scenario infeasible: %+v", result.Result.Violations)
	}
	if len(result.Unplaced) != 0 {
		t.Errorf("Unplaced = %v", result.Unplaced)
	}
	if len(result.Moves) != 1 {
		t.Fatalf("Moves = %+v, want one move", result.Moves)
	}
	move := result.Moves[0]
	if move.ItemID != "gamma" || move.FromStart != 0 || move.ToStart != 1 {
		t.Errorf("move = %+v", move)
	}

	// The input scenario keeps its original placements.
	if base.Item("gamma").StartPeriod != 0 {
		t.Error("AutoSchedule mutated the input scenario")
	}
	if got := result.Scenario.Item("gamma").StartPeriod; got != 1 {
		t.Errorf("rescheduled gamma start = %d, want 1", got)
	}

	// The pass is a governance action and is logged.
	if log.Len() != 1 {
		t.Fatalf("log has %d entries, want 1", log.Len())
	}
	if got := log.GetAll()[0].Action; got != "auto_schedule" {
		t.Errorf("log action = %q", got)
	}
}

func TestAutoScheduleRespectsDependencies(t *testing.T) {
	engine, _ := newTestEngine(t)
	base := baselineScenario()
	// Put beta before its dependency finishes; the pass must push it
	// back to alpha's finish.
	base.Items[1].StartPeriod = 0
	base.Items[1].Allocations = []portfolio.TeamAllocation{
		{TeamID: "edge", Period: 0, Tokens: 5},
		{TeamID: "edge", Period: 1, Tokens: 5},
	}

	result, err := engine.AutoSchedule(base)
	if err != nil {
		t.Fatal(err)
	}

	if !result.Result.Feasible {
		t.Fatalf("rescheduled scenario infeasible: %+v", result.Result.Violations)
	}
	beta := result.Scenario.Item("beta")
	if beta.StartPeriod != 2 {
		t.Errorf("beta start = %d, want 2", beta.StartPeriod)
	}
	for i, alloc := range beta.Allocations {
		if alloc.Period != i+2 {
			t.Errorf("beta allocation %d period = %d, want %d", i, alloc.Period, i+2)
		}
	}
}

func TestAutoScheduleReportsCycleMembers(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := &portfolio.Scenario{
		ID:      "cyclic",
		Horizon: 4,
		Teams: []portfolio.Team{
			{ID: "core", Capacity: []int{10, 10, 10, 10}},
		},
		Items: []portfolio.ScheduledItem{
			{ID: "x", StartPeriod: 0, Duration: 1, Dependencies: []string{"y"}},
			{ID: "y", StartPeriod: 1, Duration: 1, Dependencies: []string{"x"}},
		},
	}

	result, err := engine.AutoSchedule(s)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Unplaced) != 2 {
		t.Fatalf("Unplaced = %v, want both cycle members", result.Unplaced)
	}
	if result.Unplaced[0] != "x" || result.Unplaced[1] != "y" {
		t.Errorf("Unplaced = %v", result.Unplaced)
	}
	if result.Result.Feasible {
		t.Error("cyclic scenario should stay infeasible")
	}
}

func TestAutoScheduleReportsUnplaceable(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := &portfolio.Scenario{
		ID:      "tight",
		Horizon: 2,
		Teams: []portfolio.Team{
			{ID: "solo", Capacity: []int{5, 5}},
		},
		Items: []portfolio.ScheduledItem{
			{
				ID: "big", StartPeriod: 0, Duration: 1,
				Allocations: []portfolio.TeamAllocation{{TeamID: "solo", Period: 0, Tokens: 9}},
			},
		},
	}

	result, err := engine.AutoSchedule(s)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Unplaced) != 1 || result.Unplaced[0] != "big" {
		t.Errorf("Unplaced = %v, want [big]", result.Unplaced)
	}
	if len(result.Moves) != 0 {
		t.Errorf("Moves = %+v", result.Moves)
	}
	if result.Result.Feasible {
		t.Error("unplaceable scenario should stay infeasible")
	}
}

func TestAutoScheduleStableWhenFeasible(t *testing.T) {
	engine, _ := newTestEngine(t)

	result, err := engine.AutoSchedule(baselineScenario())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Moves) != 0 {
		t.Errorf("feasible scenario produced moves: %+v", result.Moves)
	}
	if !result.Result.Feasible {
		t.Error("feasible scenario became infeasible")
	}
}
