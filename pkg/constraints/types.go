package constraints

import (
	"helmline-hq/meridian/pkg/portfolio"
)

// Constraint IDs for the built-in evaluators.
const (
	ConstraintCapacity   = "capacity"
	ConstraintDependency = "dependency"
	ConstraintTemporal   = "temporal"
	ConstraintBudget     = "budget"
)

// Severity classifies a constraint finding.
type Severity string

const (
	// SeverityError marks a hard infeasibility: the scenario cannot be
	// executed as proposed.
	SeverityError Severity = "error"

	// SeverityWarning marks a soft-policy breach that does not block
	// feasibility.
	SeverityWarning Severity = "warning"
)

// Violation represents a hard infeasibility found by an evaluator.
type Violation struct {
	// ConstraintID identifies the evaluator that produced the violation.
	ConstraintID string `json:"constraint_id"`

	// Severity is always SeverityError for violations.
	Severity Severity `json:"severity"`

	// Message is a human-readable description of the breach.
	Message string `json:"message"`

	// ItemIDs lists the affected work items, if any.
	ItemIDs []string `json:"item_ids,omitempty"`

	// TeamIDs lists the affected teams, if any.
	TeamIDs []string `json:"team_ids,omitempty"`

	// Periods lists the affected planning periods, if any.
	Periods []int `json:"periods,omitempty"`
}

// Warning represents a soft-policy breach: a tracked metric crossed a
// threshold without making the scenario infeasible.
type Warning struct {
	// ConstraintID identifies the evaluator that produced the warning.
	ConstraintID string `json:"constraint_id"`

	// Severity is always SeverityWarning for warnings.
	Severity Severity `json:"severity"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Metric names the tracked quantity (e.g. "utilization").
	Metric string `json:"metric"`

	// Threshold is the configured soft limit.
	Threshold float64 `json:"threshold"`

	// Actual is the observed value.
	Actual float64 `json:"actual"`
}

// UtilizationCell is the derived demand/capacity state of one team in
// one period. Cells are recomputed on every validation, never stored.
type UtilizationCell struct {
	// TeamID identifies the team.
	TeamID string `json:"team_id"`

	// Period is the zero-based planning period.
	Period int `json:"period"`

	// Allocated is the total tokens demanded from the team in the period.
	Allocated int `json:"allocated"`

	// Available is the team's declared capacity for the period.
	Available int `json:"available"`

	// Utilization is Allocated/Available. It is 0 when Available is 0;
	// an overload against zero capacity is reported as a violation
	// instead of an infinite ratio.
	Utilization float64 `json:"utilization"`
}

// Result is the output of a single evaluator run.
//
// Utilization is nil for evaluators that do not compute a utilization
// grid; a non-nil (possibly empty) slice marks the evaluator as
// utilization-producing. This is the explicit capability tag the
// Validator keys its merge on.
type Result struct {
	Violations  []Violation
	Warnings    []Warning
	Utilization []UtilizationCell
}

// ValidationResult is the merged verdict for one scenario across all
// registered evaluators.
type ValidationResult struct {
	// Feasible is true iff Violations is empty. Warnings never affect
	// feasibility.
	Feasible bool `json:"feasible"`

	// Violations holds all hard infeasibilities, in registry order.
	Violations []Violation `json:"violations"`

	// Warnings holds all soft-policy breaches, in registry order.
	Warnings []Warning `json:"warnings"`

	// UtilizationMap is the union of all evaluators' utilization cells,
	// one per (team, period), sorted by team then period.
	UtilizationMap []UtilizationCell `json:"utilization_map"`
}

// Evaluator is the polymorphic constraint contract: evaluate a scenario,
// return violations and warnings (and optionally a utilization grid).
//
// Implementations must be pure: no scenario mutation, no hidden state,
// no dependence on evaluation order.
type Evaluator interface {
	// ID returns the stable constraint identifier used in violations,
	// warnings, and decision log entries.
	ID() string

	// Evaluate computes the constraint's findings for the scenario.
	Evaluate(scenario *portfolio.Scenario) Result
}
