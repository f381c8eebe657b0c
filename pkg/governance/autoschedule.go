package governance

import (
	"sort"
	"time"

	"helmline-hq/meridian/pkg/portfolio"
)

// AutoSchedule finds a feasible placement for every item by walking the
// dependency graph in topological order and assigning each item the
// earliest start where its dependencies have finished and every team it
// draws on has free capacity. The input scenario is never mutated.
// Items in a dependency cycle and items with no feasible placement are
// reported as unplaced and keep their original start. The pass is a
// governance action and records one decision log entry.
func (e *Engine) AutoSchedule(scenario *portfolio.Scenario) (*AutoScheduleResult, error) {
	if scenario == nil {
		return nil, &ProjectionError{Reason: "base scenario is nil"}
	}
	start := time.Now()

	projected := scenario.Clone()
	result := &AutoScheduleResult{Scenario: projected}

	order, cyclic := topoOrder(projected)
	for _, id := range cyclic {
		result.Unplaced = append(result.Unplaced, id)
	}

	// Demand accumulates as items are placed so later items see the
	// capacity earlier placements consumed. Cyclic items contribute at
	// their original placement.
	demand := make(map[allocKey]int)
	for _, id := range cyclic {
		if item := projected.Item(id); item != nil {
			for _, alloc := range item.Allocations {
				demand[allocKey{alloc.TeamID, alloc.Period}] += alloc.Tokens
			}
		}
	}

	for _, id := range order {
		idx := itemIndex(projected, id)
		item := &projected.Items[idx]

		earliest := 0
		for _, depID := range item.Dependencies {
			dep := projected.Item(depID)
			if dep == nil {
				continue
			}
			if finish := dep.FinishPeriod(); finish > earliest {
				earliest = finish
			}
		}

		placed := false
		for candidate := earliest; candidate+item.Duration <= projected.Horizon; candidate++ {
			if fitsAt(projected, item, demand, candidate) {
				if candidate != item.StartPeriod {
					result.Moves = append(result.Moves, ItemMove{
						ItemID:    item.ID,
						FromStart: item.StartPeriod,
						ToStart:   candidate,
					})
					shiftItem(item, candidate)
				}
				placed = true
				break
			}
		}
		if !placed {
			result.Unplaced = append(result.Unplaced, item.ID)
		}
		// Placed or not, the item's allocations occupy capacity.
		for _, alloc := range item.Allocations {
			demand[allocKey{alloc.TeamID, alloc.Period}] += alloc.Tokens
		}
	}
	sort.Strings(result.Unplaced)

	result.Result = e.validator.Validate(projected)

	elapsed := time.Since(start)
	outcome := outcomeFor(StatusApproved)
	switch {
	case !result.Result.Feasible:
		outcome = outcomeFor(StatusRejected)
	case len(result.Result.Warnings) > 0:
		outcome = outcomeFor(StatusApprovedWithWarnings)
	}
	e.log.Record(
		actionAutoSchedule,
		result.Moves,
		projected,
		e.validator.Registry().ConstraintIDs(),
		outcome,
		result.Result.Violations,
		result.Result.Warnings,
		elapsed,
	)

	e.logger.Info("auto schedule pass",
		"scenario", scenario.ID,
		"moves", len(result.Moves),
		"unplaced", len(result.Unplaced),
		"feasible", result.Result.Feasible)

	return result, nil
}

// fitsAt reports whether the item, shifted to the candidate start,
// stays within every team's free capacity given demand already placed.
func fitsAt(scenario *portfolio.Scenario, item *portfolio.ScheduledItem, demand map[allocKey]int, candidate int) bool {
	delta := candidate - item.StartPeriod
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

// shiftItem moves the item to a new start, carrying its allocations
// along.
func shiftItem(item *portfolio.ScheduledItem, newStart int) {
	delta := newStart - item.StartPeriod
	item.StartPeriod = newStart
	for i := range item.Allocations {
		item.Allocations[i].Period += delta
	}
}

// topoOrder returns item ids in dependency order using Kahn's
// algorithm, plus the ids left in cycles. Ties are broken by id so the
// schedule is deterministic.
func topoOrder(scenario *portfolio.Scenario) (order, cyclic []string) {
	indegree := make(map[string]int, len(scenario.Items))
	dependents := make(map[string][]string)
	for _, item := range scenario.Items {
		indegree[item.ID] += 0
		for _, dep := range item.Dependencies {
			if scenario.Item(dep) == nil {
				continue
			}
			indegree[item.ID]++
			dependents[dep] = append(dependents[dep], item.ID)
		}
	}

	ready := make([]string, 0, len(indegree))
	for id, n := range indegree {
		if n == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		next := dependents[id]
		sort.Strings(next)
		for _, dep := range next {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
				sort.Strings(ready)
			}
		}
	}

	if len(order) < len(scenario.Items) {
		placed := make(map[string]bool, len(order))
		for _, id := range order {
			placed[id] = true
		}
		for _, item := range scenario.Items {
			if !placed[item.ID] {
				cyclic = append(cyclic, item.ID)
			}
		}
		sort.Strings(cyclic)
	}
	return order, cyclic
}
