package portfolio

import "fmt"

// Team represents a delivery team with a declared token capacity for each
// planning period. Teams are immutable reference data within a scenario.
type Team struct {
	// ID uniquely identifies the team within a scenario.
	ID string `yaml:"id" json:"id"`

	// Name is the human-readable team name.
	Name string `yaml:"name" json:"name"`

	// Capacity holds the tokens available in each period, indexed by
	// period. Periods beyond len(Capacity) have zero capacity.
	Capacity []int `yaml:"capacity" json:"capacity"`
}

// CapacityAt returns the team's declared capacity for a period.
// Periods outside the declared capacity slice have zero capacity.
func (t *Team) CapacityAt(period int) int {
	if period < 0 || period >= len(t.Capacity) {
		return 0
	}
	return t.Capacity[period]
}

// TeamAllocation is the unit of demand: tokens requested from one team in
// one period. Allocations are not unique; multiple allocations targeting
// the same (team, period) pair are summed by the capacity constraint.
type TeamAllocation struct {
	// TeamID references a Team in the enclosing scenario.
	TeamID string `yaml:"team_id" json:"team_id"`

	// Period is the zero-based planning period the tokens are drawn from.
	Period int `yaml:"period" json:"period"`

	// Tokens is the amount of capacity requested. Must be >= 0.
	Tokens int `yaml:"tokens" json:"tokens"`
}

// ScheduledItem is a work item placed on the planning horizon.
//
// Invariants: Duration >= 1, StartPeriod >= 0, allocation tokens >= 0.
// The parser enforces these for loaded scenarios; evaluators surface
// breaches as violations rather than failing.
type ScheduledItem struct {
	// ID uniquely identifies the item within a scenario.
	ID string `yaml:"id" json:"id"`

	// Name is the human-readable item name.
	Name string `yaml:"name" json:"name"`

	// Allocations lists the token demand this item places on teams.
	Allocations []TeamAllocation `yaml:"allocations" json:"allocations"`

	// StartPeriod is the zero-based period the item begins in.
	StartPeriod int `yaml:"start_period" json:"start_period"`

	// Duration is the number of periods the item occupies.
	Duration int `yaml:"duration" json:"duration"`

	// Dependencies lists item IDs that must finish before this item starts.
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// FinishPeriod returns the first period after the item completes
// (StartPeriod + Duration). A dependent item may start in this period.
func (i *ScheduledItem) FinishPeriod() int {
	return i.StartPeriod + i.Duration
}

// TotalTokens returns the sum of all allocation tokens for the item.
func (i *ScheduledItem) TotalTokens() int {
	total := 0
	for _, a := range i.Allocations {
		total += a.Tokens
	}
	return total
}

// BudgetSpec declares token budget ceilings for a scenario. When present
// on a scenario it overrides the budget evaluator's configured defaults.
type BudgetSpec struct {
	// TotalTokens is the scenario-wide token ceiling. Zero means no limit.
	TotalTokens int `yaml:"total_tokens" json:"total_tokens"`

	// PerItemTokens is the per-item token ceiling. Zero means no limit.
	PerItemTokens int `yaml:"per_item_tokens" json:"per_item_tokens"`

	// WarnThreshold is the fraction (0.0-1.0) of a ceiling at which the
	// budget evaluator emits a warning. Zero disables warnings.
	WarnThreshold float64 `yaml:"warn_threshold" json:"warn_threshold"`
}

// Scenario is a complete allocation of work items to teams across a
// planning horizon of discrete periods. Valid period indexes satisfy
// 0 <= period < Horizon.
type Scenario struct {
	// ID uniquely identifies the scenario.
	ID string `yaml:"id" json:"id"`

	// Name is the human-readable scenario name.
	Name string `yaml:"name" json:"name"`

	// Horizon is the number of planning periods the scenario spans.
	Horizon int `yaml:"horizon" json:"horizon"`

	// Teams is the reference team list.
	Teams []Team `yaml:"teams" json:"teams"`

	// Items is the scheduled work item list.
	Items []ScheduledItem `yaml:"items" json:"items"`

	// Budget optionally declares token ceilings for the budget constraint.
	Budget *BudgetSpec `yaml:"budget,omitempty" json:"budget,omitempty"`
}

// Team returns the team with the given ID, or nil if the scenario does
// not declare it.
func (s *Scenario) Team(id string) *Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

// Item returns the item with the given ID, or nil if the scenario does
// not contain it.
func (s *Scenario) Item(id string) *ScheduledItem {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// TotalCapacity returns the sum of all team capacity tokens within the
// horizon.
func (s *Scenario) TotalCapacity() int {
	total := 0
	for i := range s.Teams {
		for p := 0; p < s.Horizon; p++ {
			total += s.Teams[i].CapacityAt(p)
		}
	}
	return total
}

// TotalAllocated returns the sum of all allocation tokens across items.
func (s *Scenario) TotalAllocated() int {
	total := 0
	for i := range s.Items {
		total += s.Items[i].TotalTokens()
	}
	return total
}

// Validate checks the scenario's basic structural invariants. It reports
// the first breach found. Cross-reference and feasibility checks belong
// to the constraint evaluators, not here.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario id cannot be empty")
	}
	if s.Horizon < 1 {
		return fmt.Errorf("scenario %q: horizon must be >= 1, got %d", s.ID, s.Horizon)
	}

	seenTeams := make(map[string]bool, len(s.Teams))
	for i := range s.Teams {
		t := &s.Teams[i]
		if t.ID == "" {
			return fmt.Errorf("scenario %q: team %d has empty id", s.ID, i)
		}
		if seenTeams[t.ID] {
			return fmt.Errorf("scenario %q: duplicate team id %q", s.ID, t.ID)
		}
		seenTeams[t.ID] = true
		for p, c := range t.Capacity {
			if c < 0 {
				return fmt.Errorf("scenario %q: team %q has negative capacity %d in period %d", s.ID, t.ID, c, p)
			}
		}
	}

	seenItems := make(map[string]bool, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		if item.ID == "" {
			return fmt.Errorf("scenario %q: item %d has empty id", s.ID, i)
		}
		if seenItems[item.ID] {
			return fmt.Errorf("scenario %q: duplicate item id %q", s.ID, item.ID)
		}
		seenItems[item.ID] = true
		if item.Duration < 1 {
			return fmt.Errorf("scenario %q: item %q duration must be >= 1, got %d", s.ID, item.ID, item.Duration)
		}
		for _, a := range item.Allocations {
			if a.Tokens < 0 {
				return fmt.Errorf("scenario %q: item %q has negative allocation %d for team %q period %d",
					s.ID, item.ID, a.Tokens, a.TeamID, a.Period)
			}
			if a.Period < 0 || a.Period >= s.Horizon {
				return fmt.Errorf("scenario %q: item %q allocates to period %d outside the horizon of %d",
					s.ID, item.ID, a.Period, s.Horizon)
			}
		}
	}

	return nil
}
