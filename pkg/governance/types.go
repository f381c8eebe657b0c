package governance

import (
	"time"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/portfolio"
)

// ChangeKind identifies a governance action.
type ChangeKind string

const (
	ChangeAddItem        ChangeKind = "add_item"
	ChangeRemoveItem     ChangeKind = "remove_item"
	ChangeMoveItem       ChangeKind = "move_item"
	ChangeResizeItem     ChangeKind = "resize_item"
	ChangeReallocate     ChangeKind = "reallocate"
	ChangeUpdateCapacity ChangeKind = "update_capacity"

	// actionAutoSchedule is the decision log action for automatic
	// scheduling passes.
	actionAutoSchedule = "auto_schedule"
)

// ChangeRequest describes one proposed change to a scenario. Only the
// fields relevant to Kind are consulted; Validate reports which fields
// a kind requires.
type ChangeRequest struct {
	// Kind selects the change type.
	Kind ChangeKind `yaml:"kind" json:"kind"`

	// Item is the new item for add_item.
	Item *portfolio.ScheduledItem `yaml:"item,omitempty" json:"item,omitempty"`

	// ItemID targets an existing item for remove, move, resize, and
	// reallocate changes.
	ItemID string `yaml:"item_id,omitempty" json:"item_id,omitempty"`

	// NewStartPeriod is the target start period for move_item.
	NewStartPeriod *int `yaml:"new_start_period,omitempty" json:"new_start_period,omitempty"`

	// NewDuration is the target duration for resize_item.
	NewDuration *int `yaml:"new_duration,omitempty" json:"new_duration,omitempty"`

	// Allocations replaces the item's allocations for reallocate.
	Allocations []portfolio.TeamAllocation `yaml:"allocations,omitempty" json:"allocations,omitempty"`

	// TeamID targets a team for update_capacity.
	TeamID string `yaml:"team_id,omitempty" json:"team_id,omitempty"`

	// Capacity replaces the team's per-period capacity for
	// update_capacity.
	Capacity []int `yaml:"capacity,omitempty" json:"capacity,omitempty"`
}

// Validate checks that the request carries the fields its kind needs.
func (r *ChangeRequest) Validate() error {
	switch r.Kind {
	case ChangeAddItem:
		if r.Item == nil {
			return &MalformedRequestError{Kind: r.Kind, Reason: "item is required"}
		}
		if r.Item.ID == "" {
			return &MalformedRequestError{Kind: r.Kind, Reason: "item id cannot be empty"}
		}
	case ChangeRemoveItem:
		if r.ItemID == "" {
			return &MalformedRequestError{Kind: r.Kind, Reason: "item_id is required"}
		}
	case ChangeMoveItem:
		if r.ItemID == "" {
			return &MalformedRequestError{Kind: r.Kind, Reason: "item_id is required"}
		}
		if r.NewStartPeriod == nil {
			return &MalformedRequestError{Kind: r.Kind, Reason: "new_start_period is required"}
		}
	case ChangeResizeItem:
		if r.ItemID == "" {
			return &MalformedRequestError{Kind: r.Kind, Reason: "item_id is required"}
		}
		if r.NewDuration == nil {
			return &MalformedRequestError{Kind: r.Kind, Reason: "new_duration is required"}
		}
		if *r.NewDuration < 1 {
			return &MalformedRequestError{Kind: r.Kind, Reason: "new_duration must be >= 1"}
		}
	case ChangeReallocate:
		if r.ItemID == "" {
			return &MalformedRequestError{Kind: r.Kind, Reason: "item_id is required"}
		}
		if r.Allocations == nil {
			return &MalformedRequestError{Kind: r.Kind, Reason: "allocations are required"}
		}
	case ChangeUpdateCapacity:
		if r.TeamID == "" {
			return &MalformedRequestError{Kind: r.Kind, Reason: "team_id is required"}
		}
		if r.Capacity == nil {
			return &MalformedRequestError{Kind: r.Kind, Reason: "capacity is required"}
		}
	default:
		return &MalformedRequestError{Kind: r.Kind, Reason: "unknown change kind"}
	}
	return nil
}

// ProjectedScenario is a hypothetical scenario produced by applying a
// proposed change, used for evaluation without committing anything.
type ProjectedScenario struct {
	// BaseID is the id of the scenario the projection was derived from.
	BaseID string `json:"base_id"`

	// Scenario is the projected state.
	Scenario *portfolio.Scenario `json:"scenario"`

	// Change is the request that produced the projection.
	Change ChangeRequest `json:"change"`
}

// DecisionStatus is the governance state of a proposed change. A change
// moves PROPOSED -> EVALUATED -> one of the three terminal statuses.
type DecisionStatus string

const (
	StatusProposed             DecisionStatus = "proposed"
	StatusEvaluated            DecisionStatus = "evaluated"
	StatusApproved             DecisionStatus = "approved"
	StatusApprovedWithWarnings DecisionStatus = "approved_with_warnings"
	StatusRejected             DecisionStatus = "rejected"
)

// AlternativeSuggestion is a remediation offered with a rejection.
type AlternativeSuggestion struct {
	// Kind names the remediation ("shift_start", "reduce_allocation").
	Kind string `json:"kind"`

	// ConstraintID is the constraint the suggestion addresses.
	ConstraintID string `json:"constraint_id"`

	// ItemID is the item the suggestion applies to.
	ItemID string `json:"item_id"`

	// Description is a human-readable explanation.
	Description string `json:"description"`

	// StartPeriod is the suggested start period for shift_start.
	StartPeriod *int `json:"start_period,omitempty"`

	// Tokens is the suggested allocation total for reduce_allocation.
	Tokens *int `json:"tokens,omitempty"`
}

// GovernanceDecision is the engine's verdict on a proposed action.
type GovernanceDecision struct {
	// ID is a UUID identifying the decision.
	ID string `json:"id"`

	// Action is the evaluated change kind.
	Action ChangeKind `json:"action"`

	// Status is the terminal classification.
	Status DecisionStatus `json:"status"`

	// Result is the merged validation verdict for the projection. Nil
	// only when evaluation failed before the validator ran.
	Result *constraints.ValidationResult `json:"result,omitempty"`

	// Projection is the evaluated hypothetical scenario. Nil when
	// projection itself failed.
	Projection *ProjectedScenario `json:"projection,omitempty"`

	// Suggestions holds remediations attached to a rejection.
	Suggestions []AlternativeSuggestion `json:"suggestions,omitempty"`

	// Diagnostic describes an internal failure that forced rejection.
	Diagnostic string `json:"diagnostic,omitempty"`

	// EvaluationTime is the elapsed evaluation duration.
	EvaluationTime time.Duration `json:"evaluation_time"`

	// LogEntryID is the id of the decision log entry recording this
	// decision.
	LogEntryID int64 `json:"log_entry_id"`
}

// WhatIfChange is one labelled hypothetical edit in a what-if analysis.
type WhatIfChange struct {
	// Label optionally names the edit for reporting.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	// Request is the hypothetical change.
	Request ChangeRequest `yaml:"request" json:"request"`
}

// WhatIfDelta summarizes how a what-if scenario differs from its base.
type WhatIfDelta struct {
	FeasibleBefore bool `json:"feasible_before"`
	FeasibleAfter  bool `json:"feasible_after"`

	ViolationsBefore int `json:"violations_before"`
	ViolationsAfter  int `json:"violations_after"`

	WarningsBefore int `json:"warnings_before"`
	WarningsAfter  int `json:"warnings_after"`

	// MeanUtilizationBefore/After average utilization across cells with
	// declared capacity.
	MeanUtilizationBefore float64 `json:"mean_utilization_before"`
	MeanUtilizationAfter  float64 `json:"mean_utilization_after"`

	// AffectedItems lists the item ids touched by the edits.
	AffectedItems []string `json:"affected_items"`
}

// WhatIfResult is the outcome of a hypothetical multi-change analysis.
// What-if analyses are not governance actions and are not logged.
type WhatIfResult struct {
	Changes  []WhatIfChange                `json:"changes"`
	Before   *constraints.ValidationResult `json:"before"`
	After    *constraints.ValidationResult `json:"after"`
	Delta    WhatIfDelta                   `json:"delta"`
	Scenario *portfolio.Scenario           `json:"scenario"`
}

// CapacityPlanRow is one team's capacity ledger across the horizon.
type CapacityPlanRow struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`

	// Capacity, Allocated, and Free are indexed by period.
	Capacity  []int `json:"capacity"`
	Allocated []int `json:"allocated"`
	Free      []int `json:"free"`

	TotalCapacity  int `json:"total_capacity"`
	TotalAllocated int `json:"total_allocated"`
}

// CapacityPlan is the derived team/period capacity summary for a
// scenario.
type CapacityPlan struct {
	ScenarioID string            `json:"scenario_id"`
	Horizon    int               `json:"horizon"`
	Teams      []CapacityPlanRow `json:"teams"`
}

// PortfolioHealthReport is the rollup health view of one scenario.
type PortfolioHealthReport struct {
	ScenarioID  string    `json:"scenario_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Feasible    bool      `json:"feasible"`

	ViolationsByConstraint map[string]int `json:"violations_by_constraint"`
	WarningsByConstraint   map[string]int `json:"warnings_by_constraint"`

	MeanUtilization float64 `json:"mean_utilization"`
	PeakUtilization float64 `json:"peak_utilization"`

	// OverloadedCells lists cells where demand exceeds capacity.
	OverloadedCells []constraints.UtilizationCell `json:"overloaded_cells,omitempty"`

	// ItemsAtRisk lists items cited by at least one violation.
	ItemsAtRisk []string `json:"items_at_risk,omitempty"`
}

// PortfolioSummary is the one-line rollup of a scenario.
type PortfolioSummary struct {
	ScenarioID         string  `json:"scenario_id"`
	Name               string  `json:"name"`
	Horizon            int     `json:"horizon"`
	TeamCount          int     `json:"team_count"`
	ItemCount          int     `json:"item_count"`
	TotalCapacity      int     `json:"total_capacity"`
	TotalAllocated     int     `json:"total_allocated"`
	OverallUtilization float64 `json:"overall_utilization"`
	Feasible           bool    `json:"feasible"`
}

// ItemMove records one placement change made by the auto-scheduler.
type ItemMove struct {
	ItemID    string `json:"item_id"`
	FromStart int    `json:"from_start"`
	ToStart   int    `json:"to_start"`
}

// AutoScheduleResult is the outcome of an automatic scheduling pass.
type AutoScheduleResult struct {
	// Scenario is the rescheduled projection. The input scenario is
	// never mutated.
	Scenario *portfolio.Scenario `json:"scenario"`

	// Moves lists the placement changes the pass made.
	Moves []ItemMove `json:"moves,omitempty"`

	// Unplaced lists items no feasible placement was found for.
	Unplaced []string `json:"unplaced,omitempty"`

	// Result is the validation verdict for the rescheduled scenario.
	Result *constraints.ValidationResult `json:"result"`
}
