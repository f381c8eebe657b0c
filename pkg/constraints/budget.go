package constraints

import (
	"fmt"

	"helmline-hq/meridian/pkg/portfolio"
)

// BudgetConfig declares default token ceilings for the budget evaluator.
// A scenario-level budget spec, when present, takes precedence over
// these defaults.
type BudgetConfig struct {
	// TotalTokens is the scenario-wide token ceiling. Zero means no limit.
	TotalTokens int

	// PerItemTokens is the per-item token ceiling. Zero means no limit.
	PerItemTokens int

	// WarnThreshold is the fraction (0.0-1.0) of a ceiling at which a
	// warning is emitted. Zero disables warnings.
	WarnThreshold float64
}

// DefaultBudgetConfig returns the default budget configuration: no
// ceilings enforced, warnings at 80% when a ceiling is set.
func DefaultBudgetConfig() BudgetConfig {
	return BudgetConfig{
		WarnThreshold: 0.8,
	}
}

// BudgetEvaluator checks aggregate token allocation per item and per
// scenario against declared ceilings, violating when a ceiling is
// exceeded and warning when spending approaches it.
type BudgetEvaluator struct {
	config BudgetConfig
}

// NewBudgetEvaluator creates a budget evaluator with the given default
// ceilings.
func NewBudgetEvaluator(config BudgetConfig) *BudgetEvaluator {
	return &BudgetEvaluator{config: config}
}

// ID returns the budget constraint identifier.
func (e *BudgetEvaluator) ID() string { return ConstraintBudget }

// Evaluate compares aggregate allocations against the effective
// ceilings. The scenario's own budget spec wins over the evaluator's
// configured defaults.
func (e *BudgetEvaluator) Evaluate(scenario *portfolio.Scenario) Result {
	var result Result

	totalCeiling := e.config.TotalTokens
	perItemCeiling := e.config.PerItemTokens
	warnThreshold := e.config.WarnThreshold
	if scenario.Budget != nil {
		totalCeiling = scenario.Budget.TotalTokens
		perItemCeiling = scenario.Budget.PerItemTokens
		if scenario.Budget.WarnThreshold > 0 {
			warnThreshold = scenario.Budget.WarnThreshold
		}
	}

	if perItemCeiling > 0 {
		for i := range scenario.Items {
			item := &scenario.Items[i]
			total := item.TotalTokens()

			switch {
			case total > perItemCeiling:
				result.Violations = append(result.Violations, Violation{
					ConstraintID: ConstraintBudget,
					Severity:     SeverityError,
					Message: fmt.Sprintf("item %q allocates %d tokens, exceeding the per-item budget of %d",
						item.ID, total, perItemCeiling),
					ItemIDs: []string{item.ID},
				})

			case warnThreshold > 0 && float64(total) >= warnThreshold*float64(perItemCeiling):
				result.Warnings = append(result.Warnings, Warning{
					ConstraintID: ConstraintBudget,
					Severity:     SeverityWarning,
					Message: fmt.Sprintf("item %q allocates %d of %d budgeted tokens",
						item.ID, total, perItemCeiling),
					Metric:    "item_tokens",
					Threshold: warnThreshold * float64(perItemCeiling),
					Actual:    float64(total),
				})
			}
		}
	}

	if totalCeiling > 0 {
		total := scenario.TotalAllocated()

		switch {
		case total > totalCeiling:
			result.Violations = append(result.Violations, Violation{
				ConstraintID: ConstraintBudget,
				Severity:     SeverityError,
				Message: fmt.Sprintf("scenario allocates %d tokens, exceeding the budget of %d",
					total, totalCeiling),
			})

		case warnThreshold > 0 && float64(total) >= warnThreshold*float64(totalCeiling):
			result.Warnings = append(result.Warnings, Warning{
				ConstraintID: ConstraintBudget,
				Severity:     SeverityWarning,
				Message: fmt.Sprintf("scenario allocates %d of %d budgeted tokens",
					total, totalCeiling),
				Metric:    "scenario_tokens",
				Threshold: warnThreshold * float64(totalCeiling),
				Actual:    float64(total),
			})
		}
	}

	return result
}
