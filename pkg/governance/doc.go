// Package governance implements the top-level decision engine for
// portfolio changes.
//
// On a proposed change the Engine builds a projected scenario by
// applying the change to a clone of the current scenario, runs the
// constraint validator against the projection, classifies the outcome
// (rejected when infeasible, approved-with-warnings when feasible with
// soft-policy breaches, approved otherwise), attaches alternative
// suggestions on rejection, and records exactly one decision log entry
// with the elapsed evaluation time. The original scenario is never
// mutated, and a rejected change is never applied by the engine; the
// surrounding persistence layer must treat a rejection as a no-op and
// is responsible for serializing apply-after-check per scenario.
//
// An internal failure during projection or evaluation can never
// silently approve a change: panics and projection errors are converted
// into rejected decisions carrying a diagnostic, and every decision is
// logged exactly once.
//
// The package also provides derived analyses that do not change any
// scenario: what-if deltas, capacity plans, health reports, summaries,
// and an automatic scheduling pass.
package governance
