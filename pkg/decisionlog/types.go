package decisionlog

import (
	"time"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/portfolio"
)

// Outcome classifies the result of a governance evaluation.
type Outcome string

const (
	// OutcomeApproved marks a feasible change with no warnings.
	OutcomeApproved Outcome = "approved"

	// OutcomeApprovedWithWarnings marks a feasible change that breached
	// soft policy.
	OutcomeApprovedWithWarnings Outcome = "approved_with_warnings"

	// OutcomeRejected marks an infeasible change or an evaluation
	// failure.
	OutcomeRejected Outcome = "rejected"
)

// Entry is one immutable audit record of a governance action and its
// evaluated outcome.
type Entry struct {
	// ID is the sequential entry id, unique and strictly increasing
	// within one Log instance.
	ID int64 `json:"id"`

	// RecordID is a UUID for cross-process correlation, e.g. when
	// entries are mirrored to durable storage.
	RecordID string `json:"record_id"`

	// Timestamp is when the entry was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Action is the governance action kind that was evaluated.
	Action string `json:"action"`

	// Request is the original proposed-change request, retained as an
	// opaque payload for auditing.
	Request any `json:"request"`

	// Scenario is the projected scenario that was evaluated.
	Scenario *portfolio.Scenario `json:"scenario"`

	// ConstraintIDs lists the constraints evaluated, in registry order.
	ConstraintIDs []string `json:"constraint_ids"`

	// Outcome is the decision classification.
	Outcome Outcome `json:"outcome"`

	// Violations holds the hard infeasibilities found, if any.
	Violations []constraints.Violation `json:"violations,omitempty"`

	// Warnings holds the soft-policy breaches found, if any.
	Warnings []constraints.Warning `json:"warnings,omitempty"`

	// Duration is the elapsed evaluation time.
	Duration time.Duration `json:"duration"`
}
