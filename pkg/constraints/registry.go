package constraints

// Registry holds an ordered collection of evaluators. Order affects only
// the order findings appear in merged output, never feasibility.
type Registry struct {
	evaluators []Evaluator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry creates a registry with the built-in evaluators
// registered in the default order: capacity, dependency, temporal,
// budget.
func DefaultRegistry(capacity CapacityConfig, budget BudgetConfig) *Registry {
	r := NewRegistry()
	r.Register(NewCapacityEvaluator(capacity))
	r.Register(NewDependencyEvaluator())
	r.Register(NewTemporalEvaluator())
	r.Register(NewBudgetEvaluator(budget))
	return r
}

// Register appends an evaluator to the registry.
func (r *Registry) Register(e Evaluator) {
	r.evaluators = append(r.evaluators, e)
}

// Evaluators returns a defensive copy of the registered evaluators so
// callers cannot mutate registry state.
func (r *Registry) Evaluators() []Evaluator {
	out := make([]Evaluator, len(r.evaluators))
	copy(out, r.evaluators)
	return out
}

// ConstraintIDs returns the ids of all registered evaluators in order.
func (r *Registry) ConstraintIDs() []string {
	ids := make([]string, len(r.evaluators))
	for i, e := range r.evaluators {
		ids[i] = e.ID()
	}
	return ids
}
