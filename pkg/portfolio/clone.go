package portfolio

// Clone returns a deep copy of the scenario. The governance engine
// projects proposed changes onto clones so the original snapshot is
// never mutated.
func (s *Scenario) Clone() *Scenario {
	out := &Scenario{
		ID:      s.ID,
		Name:    s.Name,
		Horizon: s.Horizon,
	}

	if s.Teams != nil {
		out.Teams = make([]Team, len(s.Teams))
		for i := range s.Teams {
			out.Teams[i] = cloneTeam(&s.Teams[i])
		}
	}

	if s.Items != nil {
		out.Items = make([]ScheduledItem, len(s.Items))
		for i := range s.Items {
			out.Items[i] = cloneItem(&s.Items[i])
		}
	}

	if s.Budget != nil {
		budget := *s.Budget
		out.Budget = &budget
	}

	return out
}

func cloneTeam(t *Team) Team {
	out := Team{
		ID:   t.ID,
		Name: t.Name,
	}
	if t.Capacity != nil {
		out.Capacity = make([]int, len(t.Capacity))
		copy(out.Capacity, t.Capacity)
	}
	return out
}

func cloneItem(i *ScheduledItem) ScheduledItem {
	out := ScheduledItem{
		ID:          i.ID,
		Name:        i.Name,
		StartPeriod: i.StartPeriod,
		Duration:    i.Duration,
	}
	if i.Allocations != nil {
		out.Allocations = make([]TeamAllocation, len(i.Allocations))
		copy(out.Allocations, i.Allocations)
	}
	if i.Dependencies != nil {
		out.Dependencies = make([]string, len(i.Dependencies))
		copy(out.Dependencies, i.Dependencies)
	}
	return out
}
