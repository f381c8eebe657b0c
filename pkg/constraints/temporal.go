package constraints

import (
	"fmt"

	"helmline-hq/meridian/pkg/portfolio"
)

// TemporalEvaluator checks that every scheduled item lies entirely
// inside the planning horizon: startPeriod >= 0 and
// startPeriod + duration <= horizon.
type TemporalEvaluator struct{}

// NewTemporalEvaluator creates a temporal-fit evaluator.
func NewTemporalEvaluator() *TemporalEvaluator {
	return &TemporalEvaluator{}
}

// ID returns the temporal constraint identifier.
func (e *TemporalEvaluator) ID() string { return ConstraintTemporal }

// Evaluate reports items extending before period 0 or past the horizon,
// citing the periods the item would occupy outside it.
func (e *TemporalEvaluator) Evaluate(scenario *portfolio.Scenario) Result {
	var result Result

	for i := range scenario.Items {
		item := &scenario.Items[i]

		if item.StartPeriod < 0 {
			result.Violations = append(result.Violations, Violation{
				ConstraintID: ConstraintTemporal,
				Severity:     SeverityError,
				Message: fmt.Sprintf("item %q starts in period %d, before the planning horizon",
					item.ID, item.StartPeriod),
				ItemIDs: []string{item.ID},
				Periods: periodsBefore(item.StartPeriod),
			})
			continue
		}

		if item.FinishPeriod() > scenario.Horizon {
			result.Violations = append(result.Violations, Violation{
				ConstraintID: ConstraintTemporal,
				Severity:     SeverityError,
				Message: fmt.Sprintf("item %q occupies periods %d-%d, extending past horizon %d",
					item.ID, item.StartPeriod, item.FinishPeriod()-1, scenario.Horizon),
				ItemIDs: []string{item.ID},
				Periods: periodsFrom(scenario.Horizon, item.FinishPeriod()),
			})
		}
	}

	return result
}

// periodsBefore lists the negative periods [start, 0).
func periodsBefore(start int) []int {
	var periods []int
	for p := start; p < 0; p++ {
		periods = append(periods, p)
	}
	return periods
}

// periodsFrom lists the periods [from, to).
func periodsFrom(from, to int) []int {
	var periods []int
	for p := from; p < to; p++ {
		periods = append(periods, p)
	}
	return periods
}
