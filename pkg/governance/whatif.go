package governance

import (
	"sort"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/portfolio"
)

// WhatIf applies a sequence of hypothetical changes to a clone of the
// scenario, validates the result, and reports the delta against the
// unmodified base. What-if analyses are not governance actions: nothing
// is logged and the base scenario is never mutated. Changes are applied
// in order, each on top of the previous one; the first change that
// cannot be projected aborts the analysis.
func (e *Engine) WhatIf(scenario *portfolio.Scenario, changes []WhatIfChange) (*WhatIfResult, error) {
	if scenario == nil {
		return nil, &ProjectionError{Reason: "base scenario is nil"}
	}

	before := e.validator.Validate(scenario)

	working := scenario
	affected := make(map[string]bool)
	for _, change := range changes {
		projection, err := Project(working, change.Request)
		if err != nil {
			return nil, err
		}
		working = projection.Scenario
		for _, id := range changedItems(change.Request) {
			affected[id] = true
		}
	}
	if working == scenario {
		working = scenario.Clone()
	}

	after := e.validator.Validate(working)

	items := make([]string, 0, len(affected))
	for id := range affected {
		items = append(items, id)
	}
	sort.Strings(items)

	return &WhatIfResult{
		Changes:  changes,
		Before:   before,
		After:    after,
		Scenario: working,
		Delta: WhatIfDelta{
			FeasibleBefore:        before.Feasible,
			FeasibleAfter:         after.Feasible,
			ViolationsBefore:      len(before.Violations),
			ViolationsAfter:       len(after.Violations),
			WarningsBefore:        len(before.Warnings),
			WarningsAfter:         len(after.Warnings),
			MeanUtilizationBefore: meanUtilization(before.UtilizationMap),
			MeanUtilizationAfter:  meanUtilization(after.UtilizationMap),
			AffectedItems:         items,
		},
	}, nil
}

func changedItems(req ChangeRequest) []string {
	switch req.Kind {
	case ChangeAddItem:
		if req.Item != nil {
			return []string{req.Item.ID}
		}
	case ChangeRemoveItem, ChangeMoveItem, ChangeResizeItem, ChangeReallocate:
		return []string{req.ItemID}
	}
	return nil
}

// meanUtilization averages utilization across cells with declared
// capacity. Cells with zero availability are skipped so a single empty
// team does not distort the mean.
func meanUtilization(cells []constraints.UtilizationCell) float64 {
	sum := 0.0
	n := 0
	for _, cell := range cells {
		if cell.Available == 0 {
			continue
		}
		sum += cell.Utilization
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
