package storage

import (
	"context"
	"sync"
)

// MemoryStorage implements Storage with an in-memory slice. Intended
// for tests.
type MemoryStorage struct {
	records []*Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store persists a copy of the record.
func (s *MemoryStorage) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordCopy := *record
	recordCopy.ConstraintIDs = append([]string(nil), record.ConstraintIDs...)
	s.records = append(s.records, &recordCopy)
	return nil
}

// Query returns copies of records matching the filters in append order.
func (s *MemoryStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*Record{}
	for _, record := range s.records {
		if !matches(record, query) {
			continue
		}
		recordCopy := *record
		results = append(results, &recordCopy)
		if query.Limit > 0 && len(results) >= query.Limit {
			break
		}
	}
	return results, nil
}

// Count returns the number of records matching the filters.
func (s *MemoryStorage) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matches(record, query) {
			count++
		}
	}
	return count, nil
}

// Close clears the backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

func matches(record *Record, query *Query) bool {
	if query == nil {
		return true
	}
	if query.StartTime != nil && record.Timestamp.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.Timestamp.After(*query.EndTime) {
		return false
	}
	if query.ScenarioID != "" && record.ScenarioID != query.ScenarioID {
		return false
	}
	if query.Outcome != "" && record.Outcome != query.Outcome {
		return false
	}
	return true
}
