package constraints

import (
	"sort"

	"helmline-hq/meridian/pkg/portfolio"
)

// Validator orchestrates all registered evaluators against one scenario
// and merges their outputs into a single ValidationResult.
type Validator struct {
	registry *Registry
}

// NewValidator creates a validator over the given registry.
func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

// Registry returns the validator's registry.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// Validate runs every registered evaluator, concatenates violations and
// warnings in registry order, and merges utilization grids from all
// utilization-producing evaluators.
//
// The utilization merge is a union keyed by (team, period): when more
// than one evaluator emits a cell for the same pair, the cell with the
// greater Allocated value is kept so a reported overload is never
// masked. Cells are returned sorted by team then period, which keeps
// repeated validations of the same scenario byte-identical.
func (v *Validator) Validate(scenario *portfolio.Scenario) *ValidationResult {
	result := &ValidationResult{
		Violations: []Violation{},
		Warnings:   []Warning{},
	}

	type cellKey struct {
		teamID string
		period int
	}
	merged := make(map[cellKey]UtilizationCell)
	sawUtilization := false

	for _, evaluator := range v.registry.Evaluators() {
		r := evaluator.Evaluate(scenario)

		result.Violations = append(result.Violations, r.Violations...)
		result.Warnings = append(result.Warnings, r.Warnings...)

		if r.Utilization == nil {
			continue
		}
		sawUtilization = true
		for _, cell := range r.Utilization {
			key := cellKey{teamID: cell.TeamID, period: cell.Period}
			if existing, ok := merged[key]; !ok || cell.Allocated > existing.Allocated {
				merged[key] = cell
			}
		}
	}

	if sawUtilization {
		result.UtilizationMap = make([]UtilizationCell, 0, len(merged))
		for _, cell := range merged {
			result.UtilizationMap = append(result.UtilizationMap, cell)
		}
		sort.Slice(result.UtilizationMap, func(i, j int) bool {
			a, b := result.UtilizationMap[i], result.UtilizationMap[j]
			if a.TeamID != b.TeamID {
				return a.TeamID < b.TeamID
			}
			return a.Period < b.Period
		})
	}

	result.Feasible = len(result.Violations) == 0

	return result
}
