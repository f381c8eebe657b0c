package constraints

import (
	"fmt"
	"strings"

	"helmline-hq/meridian/pkg/portfolio"
)

// DependencyEvaluator checks that every dependency reference resolves to
// an item in the scenario and that each dependency finishes no later
// than its dependent starts. It additionally runs an explicit
// acyclicity pass: a dependency cycle is reported as a violation with
// the cycle path, since the pairwise ordering check alone cannot
// guarantee a cycle-free graph when items overlap.
type DependencyEvaluator struct{}

// NewDependencyEvaluator creates a dependency evaluator.
func NewDependencyEvaluator() *DependencyEvaluator {
	return &DependencyEvaluator{}
}

// ID returns the dependency constraint identifier.
func (e *DependencyEvaluator) ID() string { return ConstraintDependency }

// Evaluate checks dependency resolution, ordering, and acyclicity.
func (e *DependencyEvaluator) Evaluate(scenario *portfolio.Scenario) Result {
	var result Result

	for i := range scenario.Items {
		item := &scenario.Items[i]
		for _, depID := range item.Dependencies {
			dep := scenario.Item(depID)
			if dep == nil {
				result.Violations = append(result.Violations, Violation{
					ConstraintID: ConstraintDependency,
					Severity:     SeverityError,
					Message: fmt.Sprintf("item %q depends on unknown item %q",
						item.ID, depID),
					ItemIDs: []string{item.ID, depID},
				})
				continue
			}

			if dep.FinishPeriod() > item.StartPeriod {
				result.Violations = append(result.Violations, Violation{
					ConstraintID: ConstraintDependency,
					Severity:     SeverityError,
					Message: fmt.Sprintf("item %q starts in period %d before dependency %q finishes in period %d",
						item.ID, item.StartPeriod, dep.ID, dep.FinishPeriod()),
					ItemIDs: []string{item.ID, dep.ID},
					Periods: []int{item.StartPeriod, dep.FinishPeriod()},
				})
			}
		}
	}

	result.Violations = append(result.Violations, e.findCycles(scenario)...)

	return result
}

// findCycles runs a three-color depth-first search over the dependency
// graph and reports one violation per distinct cycle.
func (e *DependencyEvaluator) findCycles(scenario *portfolio.Scenario) []Violation {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // fully explored
	)

	color := make(map[string]int, len(scenario.Items))
	var violations []Violation

	var path []string
	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		path = append(path, id)

		item := scenario.Item(id)
		if item != nil {
			for _, depID := range item.Dependencies {
				if scenario.Item(depID) == nil {
					// Unresolved references are reported by the
					// pairwise pass.
					continue
				}
				switch color[depID] {
				case white:
					visit(depID)
				case gray:
					violations = append(violations, cycleViolation(path, depID))
				}
			}
		}

		path = path[:len(path)-1]
		color[id] = black
	}

	for i := range scenario.Items {
		if color[scenario.Items[i].ID] == white {
			visit(scenario.Items[i].ID)
		}
	}

	return violations
}

// cycleViolation builds the violation for a cycle closed by an edge from
// the tail of path back to entry.
func cycleViolation(path []string, entry string) Violation {
	start := 0
	for i, id := range path {
		if id == entry {
			start = i
			break
		}
	}
	cycle := append([]string{}, path[start:]...)
	cycle = append(cycle, entry)

	return Violation{
		ConstraintID: ConstraintDependency,
		Severity:     SeverityError,
		Message:      fmt.Sprintf("dependency cycle detected: %s", strings.Join(cycle, " -> ")),
		ItemIDs:      cycle[:len(cycle)-1],
	}
}
