package governance

import (
	"fmt"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/portfolio"
)

// Suggest derives alternative placements from the violations of a
// rejected projection. At most one suggestion is produced per violated
// constraint, targeting the first item that constraint cited.
// Suggestions are advisory and are not re-validated here.
func Suggest(scenario *portfolio.Scenario, violations []constraints.Violation) []AlternativeSuggestion {
	if scenario == nil || len(violations) == 0 {
		return nil
	}

	var suggestions []AlternativeSuggestion
	seen := make(map[string]bool)

	for _, v := range violations {
		if seen[v.ConstraintID] || len(v.ItemIDs) == 0 {
			continue
		}
		item := scenario.Item(v.ItemIDs[0])
		if item == nil {
			continue
		}

		var s *AlternativeSuggestion
		switch v.ConstraintID {
		case constraints.ConstraintTemporal:
			s = suggestTemporalShift(scenario, item)
		case constraints.ConstraintDependency:
			s = suggestDependencyShift(scenario, item)
		case constraints.ConstraintCapacity:
			s = suggestCapacityFix(scenario, item)
		}
		if s != nil {
			seen[v.ConstraintID] = true
			suggestions = append(suggestions, *s)
		}
	}

	return suggestions
}

// suggestTemporalShift proposes the latest start that keeps the item
// inside the horizon.
func suggestTemporalShift(scenario *portfolio.Scenario, item *portfolio.ScheduledItem) *AlternativeSuggestion {
	start := scenario.Horizon - item.Duration
	if start < 0 || start == item.StartPeriod {
		return nil
	}
	return &AlternativeSuggestion{
		Kind:         "shift_start",
		ConstraintID: constraints.ConstraintTemporal,
		ItemID:       item.ID,
		Description:  fmt.Sprintf("move %s to start at period %d so it finishes within the horizon", item.ID, start),
		StartPeriod:  &start,
	}
}

// suggestDependencyShift proposes starting the item when its latest
// dependency finishes.
func suggestDependencyShift(scenario *portfolio.Scenario, item *portfolio.ScheduledItem) *AlternativeSuggestion {
	earliest := 0
	for _, depID := range item.Dependencies {
		dep := scenario.Item(depID)
		if dep == nil {
			continue
		}
		if finish := dep.FinishPeriod(); finish > earliest {
			earliest = finish
		}
	}
	if earliest <= item.StartPeriod || earliest+item.Duration > scenario.Horizon {
		return nil
	}
	return &AlternativeSuggestion{
		Kind:         "shift_start",
		ConstraintID: constraints.ConstraintDependency,
		ItemID:       item.ID,
		Description:  fmt.Sprintf("move %s to start at period %d, after its dependencies finish", item.ID, earliest),
		StartPeriod:  &earliest,
	}
}

// suggestCapacityFix proposes either a later start with free capacity
// for every allocation, or a reduced allocation total that fits where
// the item is.
func suggestCapacityFix(scenario *portfolio.Scenario, item *portfolio.ScheduledItem) *AlternativeSuggestion {
	demand := demandWithout(scenario, item.ID)

	// First preference is a shifted start where every allocation fits.
	for start := 0; start+item.Duration <= scenario.Horizon; start++ {
		if start == item.StartPeriod {
			continue
		}
		delta := start - item.StartPeriod
		if allocationsFit(scenario, item, demand, delta) {
			return &AlternativeSuggestion{
				Kind:         "shift_start",
				ConstraintID: constraints.ConstraintCapacity,
				ItemID:       item.ID,
				Description:  fmt.Sprintf("move %s to start at period %d where all its teams have free capacity", item.ID, start),
				StartPeriod:  &start,
			}
		}
	}

	// Otherwise propose shrinking the item to the free capacity at its
	// current placement.
	fit := 0
	for _, alloc := range item.Allocations {
		team := scenario.Team(alloc.TeamID)
		if team == nil {
			continue
		}
		free := team.CapacityAt(alloc.Period) - demand[allocKey{alloc.TeamID, alloc.Period}]
		if free < 0 {
			free = 0
		}
		if alloc.Tokens < free {
			fit += alloc.Tokens
		} else {
			fit += free
		}
	}
	if fit <= 0 || fit >= item.TotalTokens() {
		return nil
	}
	return &AlternativeSuggestion{
		Kind:         "reduce_allocation",
		ConstraintID: constraints.ConstraintCapacity,
		ItemID:       item.ID,
		Description:  fmt.Sprintf("reduce %s to %d total tokens to fit the remaining capacity", item.ID, fit),
		Tokens:       &fit,
	}
}

type allocKey struct {
	teamID string
	period int
}

// demandWithout sums allocated tokens per (team, period) across all
// items except the excluded one.
func demandWithout(scenario *portfolio.Scenario, excludeID string) map[allocKey]int {
	demand := make(map[allocKey]int)
	for _, item := range scenario.Items {
		if item.ID == excludeID {
			continue
		}
		for _, alloc := range item.Allocations {
			demand[allocKey{alloc.TeamID, alloc.Period}] += alloc.Tokens
		}
	}
	return demand
}

// allocationsFit reports whether shifting every allocation of item by
// delta periods leaves each one within its team's free capacity.
func allocationsFit(scenario *portfolio.Scenario, item *portfolio.ScheduledItem, demand map[allocKey]int, delta int) bool {
	for _, alloc := range item.Allocations {
		team := scenario.Team(alloc.TeamID)
		if team == nil {
			return false
		}
		period := alloc.Period + delta
		if period < 0 || period >= scenario.Horizon {
			return false
		}
		free := team.CapacityAt(period) - demand[allocKey{alloc.TeamID, period}]
		if alloc.Tokens > free {
			return false
		}
	}
	return true
}
