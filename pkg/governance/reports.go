package governance

import (
	"sort"
	"time"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/portfolio"
)

// CapacityPlan builds the per-team, per-period capacity ledger for a
// scenario. Allocations targeting periods outside the horizon do not
// appear in the ledger; the capacity evaluator reports those as
// violations.
func (e *Engine) CapacityPlan(scenario *portfolio.Scenario) *CapacityPlan {
	plan := &CapacityPlan{
		ScenarioID: scenario.ID,
		Horizon:    scenario.Horizon,
		Teams:      make([]CapacityPlanRow, 0, len(scenario.Teams)),
	}

	allocated := make(map[allocKey]int)
	for _, item := range scenario.Items {
		for _, alloc := range item.Allocations {
			allocated[allocKey{alloc.TeamID, alloc.Period}] += alloc.Tokens
		}
	}

	for _, team := range scenario.Teams {
		row := CapacityPlanRow{
			TeamID:    team.ID,
			TeamName:  team.Name,
			Capacity:  make([]int, scenario.Horizon),
			Allocated: make([]int, scenario.Horizon),
			Free:      make([]int, scenario.Horizon),
		}
		for p := 0; p < scenario.Horizon; p++ {
			capacity := team.CapacityAt(p)
			demand := allocated[allocKey{team.ID, p}]
			row.Capacity[p] = capacity
			row.Allocated[p] = demand
			row.Free[p] = capacity - demand
			row.TotalCapacity += capacity
			row.TotalAllocated += demand
		}
		plan.Teams = append(plan.Teams, row)
	}

	return plan
}

// HealthReport validates a scenario and rolls the result up into a
// portfolio health view.
func (e *Engine) HealthReport(scenario *portfolio.Scenario) *PortfolioHealthReport {
	return e.HealthReportFrom(scenario, e.validator.Validate(scenario))
}

// HealthReportFrom rolls an existing validation result up into a
// portfolio health view, for callers that already hold one and do not
// want the scenario validated a second time.
func (e *Engine) HealthReportFrom(scenario *portfolio.Scenario, result *constraints.ValidationResult) *PortfolioHealthReport {
	report := &PortfolioHealthReport{
		ScenarioID:             scenario.ID,
		GeneratedAt:            time.Now().UTC(),
		Feasible:               result.Feasible,
		ViolationsByConstraint: make(map[string]int),
		WarningsByConstraint:   make(map[string]int),
	}

	atRisk := make(map[string]bool)
	for _, v := range result.Violations {
		report.ViolationsByConstraint[v.ConstraintID]++
		for _, id := range v.ItemIDs {
			atRisk[id] = true
		}
	}
	for _, w := range result.Warnings {
		report.WarningsByConstraint[w.ConstraintID]++
	}

	for _, cell := range result.UtilizationMap {
		if cell.Utilization > report.PeakUtilization {
			report.PeakUtilization = cell.Utilization
		}
		if cell.Allocated > cell.Available {
			report.OverloadedCells = append(report.OverloadedCells, cell)
		}
	}
	report.MeanUtilization = meanUtilization(result.UtilizationMap)

	for id := range atRisk {
		report.ItemsAtRisk = append(report.ItemsAtRisk, id)
	}
	sort.Strings(report.ItemsAtRisk)

	return report
}

// Summary builds the one-line rollup of a scenario.
func (e *Engine) Summary(scenario *portfolio.Scenario) *PortfolioSummary {
	result := e.validator.Validate(scenario)

	capacity := scenario.TotalCapacity()
	allocated := scenario.TotalAllocated()
	utilization := 0.0
	if capacity > 0 {
		utilization = float64(allocated) / float64(capacity)
	}

	return &PortfolioSummary{
		ScenarioID:         scenario.ID,
		Name:               scenario.Name,
		Horizon:            scenario.Horizon,
		TeamCount:          len(scenario.Teams),
		ItemCount:          len(scenario.Items),
		TotalCapacity:      capacity,
		TotalAllocated:     allocated,
		OverallUtilization: utilization,
		Feasible:           result.Feasible,
	}
}
