// Package constraints implements the composable constraint evaluation
// core of the portfolio engine.
//
// An Evaluator is a pure function from a scenario to a Result: the same
// scenario always yields the same violations, warnings, and (for
// utilization-producing evaluators) utilization cells, with no mutation
// of the scenario and no hidden state. Evaluators never depend on each
// other's output or on evaluation order.
//
// The Registry holds an ordered evaluator set; the default registration
// order is capacity, dependency, temporal, budget. The Validator runs
// every registered evaluator against one scenario and merges the
// outputs into a single ValidationResult. Utilization grids from
// multiple evaluators are merged as a union keyed by (team, period),
// never last-writer-wins.
//
// Infeasibility is reported as data, not as errors: evaluators do not
// fail for well-formed input, and dangling references (unknown team or
// dependency IDs) surface as violations with descriptive messages so
// callers always receive a ValidationResult.
package constraints
