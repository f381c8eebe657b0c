package constraints

import "helmline-hq/meridian/pkg/portfolio"

// twoTeamScenario builds a feasible baseline: two teams, four periods,
// two items with a satisfied dependency.
func twoTeamScenario() *portfolio.Scenario {
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

// violationsFor filters violations by constraint id.
func violationsFor(violations []Violation, constraintID string) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.ConstraintID == constraintID {
			out = append(out, v)
		}
	}
	return out
}

// cellFor finds the utilization cell for a (team, period) pair.
func cellFor(cells []UtilizationCell, teamID string, period int) *UtilizationCell {
	for i := range cells {
		if cells[i].TeamID == teamID && cells[i].Period == period {
			return &cells[i]
		}
	}
	return nil
}
