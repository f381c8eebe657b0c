package source

import (
	"context"
	"fmt"
	"sync"

	"helmline-hq/meridian/pkg/portfolio"
)

// MemorySource serves a fixed set of scenarios held in memory. It is
// the backend of choice for tests and for embedding the engine.
type MemorySource struct {
	mu        sync.RWMutex
	scenarios []*portfolio.Scenario
}

// NewMemorySource creates a memory source with the given scenarios.
func NewMemorySource(scenarios ...*portfolio.Scenario) *MemorySource {
	return &MemorySource{scenarios: scenarios}
}

// Load returns clones of the held scenarios so callers cannot mutate
// the source's state.
func (s *MemorySource) Load(_ context.Context) ([]*portfolio.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*portfolio.Scenario, len(s.scenarios))
	for i, scenario := range s.scenarios {
		out[i] = scenario.Clone()
	}
	return out, nil
}

// Describe identifies the source for logs.
func (s *MemorySource) Describe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("memory (%d scenarios)", len(s.scenarios))
}

// Set replaces the held scenarios.
func (s *MemorySource) Set(scenarios ...*portfolio.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = scenarios
}

// Add appends a scenario.
func (s *MemorySource) Add(scenario *portfolio.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = append(s.scenarios, scenario)
}
