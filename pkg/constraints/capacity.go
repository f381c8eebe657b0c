package constraints

import (
	"fmt"
	"sort"

	"helmline-hq/meridian/pkg/portfolio"
)

// CapacityConfig tunes the capacity evaluator.
type CapacityConfig struct {
	// SoftThreshold is the utilization fraction (0.0-1.0) above which a
	// warning is emitted for cells that stay within capacity.
	// Zero disables soft-threshold warnings.
	SoftThreshold float64
}

// DefaultCapacityConfig returns the default capacity configuration.
func DefaultCapacityConfig() CapacityConfig {
	return CapacityConfig{
		SoftThreshold: 0.9,
	}
}

// CapacityEvaluator checks that the summed token demand on every
// (team, period) pair stays within the team's declared capacity. It is
// the utilization-producing evaluator: it emits one UtilizationCell per
// (team, period) in the teams x horizon grid regardless of violations.
type CapacityEvaluator struct {
	config CapacityConfig
}

// NewCapacityEvaluator creates a capacity evaluator with the given
// configuration.
func NewCapacityEvaluator(config CapacityConfig) *CapacityEvaluator {
	return &CapacityEvaluator{config: config}
}

// ID returns the capacity constraint identifier.
func (e *CapacityEvaluator) ID() string { return ConstraintCapacity }

// Evaluate sums allocations per (team, period), compares against
// declared capacity, and derives the utilization grid.
func (e *CapacityEvaluator) Evaluate(scenario *portfolio.Scenario) Result {
	type cellKey struct {
		teamID string
		period int
	}

	allocated := make(map[cellKey]int)
	allocatedItems := make(map[cellKey][]string)

	result := Result{
		// Non-nil marks this evaluator as utilization-producing even
		// when the grid is empty.
		Utilization: []UtilizationCell{},
	}

	for i := range scenario.Items {
		item := &scenario.Items[i]
		for _, a := range item.Allocations {
			if scenario.Team(a.TeamID) == nil {
				result.Violations = append(result.Violations, Violation{
					ConstraintID: ConstraintCapacity,
					Severity:     SeverityError,
					Message: fmt.Sprintf("item %q allocates %d tokens to unknown team %q in period %d",
						item.ID, a.Tokens, a.TeamID, a.Period),
					ItemIDs: []string{item.ID},
					TeamIDs: []string{a.TeamID},
					Periods: []int{a.Period},
				})
				continue
			}
			if a.Period < 0 || a.Period >= scenario.Horizon {
				result.Violations = append(result.Violations, Violation{
					ConstraintID: ConstraintCapacity,
					Severity:     SeverityError,
					Message: fmt.Sprintf("item %q allocates %d tokens to team %q in period %d outside the horizon of %d",
						item.ID, a.Tokens, a.TeamID, a.Period, scenario.Horizon),
					ItemIDs: []string{item.ID},
					TeamIDs: []string{a.TeamID},
					Periods: []int{a.Period},
				})
				continue
			}
			key := cellKey{teamID: a.TeamID, period: a.Period}
			allocated[key] += a.Tokens
			allocatedItems[key] = appendUnique(allocatedItems[key], item.ID)
		}
	}

	// Walk the full teams x horizon grid in declaration order so the
	// output is deterministic.
	for t := range scenario.Teams {
		team := &scenario.Teams[t]
		for period := 0; period < scenario.Horizon; period++ {
			key := cellKey{teamID: team.ID, period: period}
			demand := allocated[key]
			available := team.CapacityAt(period)

			cell := UtilizationCell{
				TeamID:    team.ID,
				Period:    period,
				Allocated: demand,
				Available: available,
			}
			if available > 0 {
				cell.Utilization = float64(demand) / float64(available)
			}
			result.Utilization = append(result.Utilization, cell)

			items := allocatedItems[key]
			sort.Strings(items)

			switch {
			case available == 0 && demand > 0:
				result.Violations = append(result.Violations, Violation{
					ConstraintID: ConstraintCapacity,
					Severity:     SeverityError,
					Message: fmt.Sprintf("team %q has no capacity in period %d but %d tokens allocated",
						team.ID, period, demand),
					ItemIDs: items,
					TeamIDs: []string{team.ID},
					Periods: []int{period},
				})

			case demand > available:
				result.Violations = append(result.Violations, Violation{
					ConstraintID: ConstraintCapacity,
					Severity:     SeverityError,
					Message: fmt.Sprintf("team %q overallocated in period %d: %d tokens allocated, %d available (%d over)",
						team.ID, period, demand, available, demand-available),
					ItemIDs: items,
					TeamIDs: []string{team.ID},
					Periods: []int{period},
				})

			case e.config.SoftThreshold > 0 && available > 0 && cell.Utilization > e.config.SoftThreshold:
				result.Warnings = append(result.Warnings, Warning{
					ConstraintID: ConstraintCapacity,
					Severity:     SeverityWarning,
					Message: fmt.Sprintf("team %q utilization %.2f in period %d exceeds soft threshold %.2f",
						team.ID, cell.Utilization, period, e.config.SoftThreshold),
					Metric:    "utilization",
					Threshold: e.config.SoftThreshold,
					Actual:    cell.Utilization,
				})
			}
		}
	}

	return result
}

func appendUnique(items []string, id string) []string {
	for _, existing := range items {
		if existing == id {
			return items
		}
	}
	return append(items, id)
}
