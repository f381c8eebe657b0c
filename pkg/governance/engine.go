package governance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/decisionlog"
	"helmline-hq/meridian/pkg/portfolio"
)

// Observer receives decision outcomes for telemetry. Implementations
// must be safe for concurrent use.
type Observer interface {
	// ObserveDecision is called once per decision with its terminal
	// status and evaluation duration.
	ObserveDecision(status DecisionStatus, duration time.Duration)

	// ObserveViolations is called per constraint with the number of
	// violations it produced for a decision.
	ObserveViolations(constraintID string, count int)
}

type noopObserver struct{}

func (noopObserver) ObserveDecision(DecisionStatus, time.Duration) {}
func (noopObserver) ObserveViolations(string, int)                 {}

// Engine evaluates proposed portfolio changes and records governance
// decisions. It is safe for concurrent use; callers remain responsible
// for serializing apply-after-check on a given scenario.
type Engine struct {
	validator *constraints.Validator
	log       *decisionlog.Log
	logger    *slog.Logger
	observer  Observer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine's structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver sets the telemetry observer.
func WithObserver(obs Observer) EngineOption {
	return func(e *Engine) {
		e.observer = obs
	}
}

// New creates a governance engine backed by the given validator and
// decision log.
func New(validator *constraints.Validator, log *decisionlog.Log, opts ...EngineOption) (*Engine, error) {
	if validator == nil {
		return nil, errors.New("governance: validator is required")
	}
	if log == nil {
		return nil, errors.New("governance: decision log is required")
	}

	e := &Engine{
		validator: validator,
		log:       log,
		logger:    slog.Default().With("component", "governance"),
		observer:  noopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Validate runs the constraint validator against a scenario without
// proposing any change. Nothing is logged.
func (e *Engine) Validate(scenario *portfolio.Scenario) *constraints.ValidationResult {
	return e.validator.Validate(scenario)
}

// Propose evaluates a change request against a scenario and returns the
// governance decision. The scenario is never mutated, and exactly one
// decision log entry is recorded regardless of outcome. Internal
// failures reject the change rather than approving it.
func (e *Engine) Propose(ctx context.Context, scenario *portfolio.Scenario, req ChangeRequest) (decision *GovernanceDecision, err error) {
	start := time.Now()

	decision = &GovernanceDecision{
		ID:     uuid.New().String(),
		Action: req.Kind,
		Status: StatusProposed,
	}

	defer func() {
		if r := recover(); r != nil {
			decision.Status = StatusRejected
			decision.Diagnostic = fmt.Sprintf("internal evaluation failure: %v", r)
			decision.Suggestions = nil
			e.logger.Error("evaluation panic, rejecting change",
				"action", req.Kind,
				"panic", r)
		}
		decision.EvaluationTime = time.Since(start)
		e.finalize(scenario, req, decision)
	}()

	if err := ctx.Err(); err != nil {
		decision.Status = StatusRejected
		decision.Diagnostic = "evaluation cancelled: " + err.Error()
		return decision, nil
	}

	projection, projErr := Project(scenario, req)
	if projErr != nil {
		decision.Status = StatusRejected
		decision.Diagnostic = projErr.Error()
		e.logger.Info("change rejected at projection",
			"action", req.Kind,
			"reason", projErr.Error())
		return decision, nil
	}
	decision.Projection = projection
	decision.Status = StatusEvaluated

	result := e.validator.Validate(projection.Scenario)
	decision.Result = result

	switch {
	case !result.Feasible:
		decision.Status = StatusRejected
		decision.Suggestions = Suggest(projection.Scenario, result.Violations)
	case len(result.Warnings) > 0:
		decision.Status = StatusApprovedWithWarnings
	default:
		decision.Status = StatusApproved
	}

	e.logger.Info("governance decision",
		"action", req.Kind,
		"status", decision.Status,
		"violations", len(result.Violations),
		"warnings", len(result.Warnings))

	return decision, nil
}

// finalize records the decision in the log and reports telemetry. It is
// the single exit path for Propose.
func (e *Engine) finalize(scenario *portfolio.Scenario, req ChangeRequest, decision *GovernanceDecision) {
	var (
		violations []constraints.Violation
		warnings   []constraints.Warning
	)
	if decision.Result != nil {
		violations = decision.Result.Violations
		warnings = decision.Result.Warnings
	}

	logged := scenario
	if decision.Projection != nil {
		logged = decision.Projection.Scenario
	}

	entry := e.log.Record(
		string(req.Kind),
		req,
		logged,
		e.validator.Registry().ConstraintIDs(),
		outcomeFor(decision.Status),
		violations,
		warnings,
		decision.EvaluationTime,
	)
	decision.LogEntryID = entry.ID

	e.observer.ObserveDecision(decision.Status, decision.EvaluationTime)
	perConstraint := make(map[string]int)
	for _, v := range violations {
		perConstraint[v.ConstraintID]++
	}
	for id, n := range perConstraint {
		e.observer.ObserveViolations(id, n)
	}
}

func outcomeFor(status DecisionStatus) decisionlog.Outcome {
	switch status {
	case StatusApproved:
		return decisionlog.OutcomeApproved
	case StatusApprovedWithWarnings:
		return decisionlog.OutcomeApprovedWithWarnings
	default:
		return decisionlog.OutcomeRejected
	}
}
