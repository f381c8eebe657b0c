package portfolio

import "testing"

func testScenario() *Scenario {
	return &Scenario{
		ID:      "q3-plan",
		Name:    "Q3 Plan",
		Horizon: 4,
		Teams: []Team{
			{ID: "platform", Name: "Platform", Capacity: []int{10, 10, 10, 10}},
			{ID: "mobile", Name: "Mobile", Capacity: []int{8, 8, 8, 8}},
		},
		Items: []ScheduledItem{
			{
				ID:          "auth",
				Name:        "Auth revamp",
				StartPeriod: 0,
				Duration:    2,
				Allocations: []TeamAllocation{
					{TeamID: "platform", Period: 0, Tokens: 6},
					{TeamID: "platform", Period: 1, Tokens: 4},
				},
			},
			{
				ID:           "push",
				Name:         "Push notifications",
				StartPeriod:  2,
				Duration:     2,
				Dependencies: []string{"auth"},
				Allocations: []TeamAllocation{
					{TeamID: "mobile", Period: 2, Tokens: 5},
					{TeamID: "mobile", Period: 3, Tokens: 5},
				},
			},
		},
	}
}

func TestTeamCapacityAt(t *testing.T) {
	team := Team{ID: "t1", Capacity: []int{5, 3}}

	tests := []struct {
		period int
		want   int
	}{
		{period: 0, want: 5},
		{period: 1, want: 3},
		{period: 2, want: 0},
		{period: -1, want: 0},
	}

	for _, tt := range tests {
		if got := team.CapacityAt(tt.period); got != tt.want {
			t.Errorf("CapacityAt(%d) = %d, want %d", tt.period, got, tt.want)
		}
	}
}

func TestScheduledItemFinishPeriod(t *testing.T) {
	item := ScheduledItem{StartPeriod: 1, Duration: 3}
	if got := item.FinishPeriod(); got != 4 {
		t.Errorf("FinishPeriod() = %d, want 4", got)
	}
}

func TestScheduledItemTotalTokens(t *testing.T) {
	item := ScheduledItem{
		Allocations: []TeamAllocation{
			{TeamID: "a", Period: 0, Tokens: 3},
			{TeamID: "b", Period: 1, Tokens: 7},
		},
	}
	if got := item.TotalTokens(); got != 10 {
		t.Errorf("TotalTokens() = %d, want 10", got)
	}
}

func TestScenarioLookups(t *testing.T) {
	s := testScenario()

	if team := s.Team("platform"); team == nil || team.Name != "Platform" {
		t.Errorf("Team(platform) = %v, want Platform team", team)
	}
	if team := s.Team("missing"); team != nil {
		t.Errorf("Team(missing) = %v, want nil", team)
	}
	if item := s.Item("push"); item == nil || item.Name != "Push notifications" {
		t.Errorf("Item(push) = %v, want push item", item)
	}
	if item := s.Item("missing"); item != nil {
		t.Errorf("Item(missing) = %v, want nil", item)
	}
}

func TestScenarioTotals(t *testing.T) {
	s := testScenario()

	if got := s.TotalCapacity(); got != 72 {
		t.Errorf("TotalCapacity() = %d, want 72", got)
	}
	if got := s.TotalAllocated(); got != 20 {
		t.Errorf("TotalAllocated() = %d, want 20", got)
	}
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr bool
	}{
		{
			name:   "valid scenario",
			mutate: func(s *Scenario) {},
		},
		{
			name:    "empty id",
			mutate:  func(s *Scenario) { s.ID = "" },
			wantErr: true,
		},
		{
			name:    "zero horizon",
			mutate:  func(s *Scenario) { s.Horizon = 0 },
			wantErr: true,
		},
		{
			name:    "duplicate team id",
			mutate:  func(s *Scenario) { s.Teams[1].ID = s.Teams[0].ID },
			wantErr: true,
		},
		{
			name:    "negative capacity",
			mutate:  func(s *Scenario) { s.Teams[0].Capacity[2] = -1 },
			wantErr: true,
		},
		{
			name:    "duplicate item id",
			mutate:  func(s *Scenario) { s.Items[1].ID = s.Items[0].ID },
			wantErr: true,
		},
		{
			name:    "zero duration",
			mutate:  func(s *Scenario) { s.Items[0].Duration = 0 },
			wantErr: true,
		},
		{
			name:    "negative allocation",
			mutate:  func(s *Scenario) { s.Items[0].Allocations[0].Tokens = -2 },
			wantErr: true,
		},
		{
			name:    "allocation period past horizon",
			mutate:  func(s *Scenario) { s.Items[0].Allocations[0].Period = 4 },
			wantErr: true,
		},
		{
			name:    "negative allocation period",
			mutate:  func(s *Scenario) { s.Items[0].Allocations[0].Period = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScenario()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScenarioClone(t *testing.T) {
	s := testScenario()
	s.Budget = &BudgetSpec{TotalTokens: 100, WarnThreshold: 0.8}

	clone := s.Clone()

	// Mutating the clone must not leak into the original.
	clone.Teams[0].Capacity[0] = 99
	clone.Items[0].Allocations[0].Tokens = 99
	clone.Items[1].Dependencies[0] = "changed"
	clone.Budget.TotalTokens = 1

	if s.Teams[0].Capacity[0] != 10 {
		t.Error("clone shares team capacity slice with original")
	}
	if s.Items[0].Allocations[0].Tokens != 6 {
		t.Error("clone shares allocations slice with original")
	}
	if s.Items[1].Dependencies[0] != "auth" {
		t.Error("clone shares dependencies slice with original")
	}
	if s.Budget.TotalTokens != 100 {
		t.Error("clone shares budget spec with original")
	}
}
