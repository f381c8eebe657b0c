package storage

import (
	"context"
	"fmt"
	"time"
)

// Record is the storage representation of one decision log entry. The
// full violation and warning payloads stay in the in-memory log; the
// stored record carries the classification and counts needed for audit
// queries.
type Record struct {
	// SequenceID is the in-process sequential entry id.
	SequenceID int64 `json:"sequence_id"`

	// RecordID is the entry's UUID, unique across processes.
	RecordID string `json:"record_id"`

	// Timestamp is when the entry was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Action is the governance action kind.
	Action string `json:"action"`

	// Outcome is the decision classification.
	Outcome string `json:"outcome"`

	// ScenarioID identifies the projected scenario evaluated.
	ScenarioID string `json:"scenario_id"`

	// ConstraintIDs lists the constraints evaluated.
	ConstraintIDs []string `json:"constraint_ids"`

	// Violations is the number of violations found.
	Violations int `json:"violations"`

	// Warnings is the number of warnings found.
	Warnings int `json:"warnings"`

	// DurationMs is the evaluation time in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}

// Query filters stored records.
type Query struct {
	// StartTime and EndTime bound the record timestamp, inclusive.
	StartTime *time.Time
	EndTime   *time.Time

	// ScenarioID filters by scenario.
	ScenarioID string

	// Outcome filters by decision classification.
	Outcome string

	// Limit caps the number of returned records; zero means no cap.
	Limit int
}

// Storage is the interface decision log backends implement.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// Query returns records matching the filters, ordered by sequence id.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Close releases backend resources.
	Close() error
}

// StorageError wraps a backend failure with the backend name and
// operation for caller branching.
type StorageError struct {
	Backend string
	Op      string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("decisionlog storage %s: %s: %v", e.Backend, e.Op, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error { return e.Cause }

// NewStorageError creates a StorageError.
func NewStorageError(backend, op string, cause error) *StorageError {
	return &StorageError{Backend: backend, Op: op, Cause: cause}
}
