package decisionlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/decisionlog/storage"
	"helmline-hq/meridian/pkg/portfolio"
)

// Log is the append-only decision log. The in-memory entry list is the
// source of truth; when a storage backend is attached, every entry is
// additionally mirrored there.
type Log struct {
	entries []Entry
	nextID  int64
	mu      sync.Mutex

	store  storage.Storage
	logger *slog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithStorage attaches a durable storage backend. Entries are mirrored
// synchronously on Record; a storage failure is logged and does not
// fail the append, so the audit trail in memory stays complete.
func WithStorage(store storage.Storage) Option {
	return func(l *Log) {
		l.store = store
	}
}

// New creates an empty decision log.
func New(opts ...Option) *Log {
	l := &Log{
		nextID: 1,
		logger: slog.Default().With("component", "decisionlog"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record creates one entry with the next sequential id and the current
// timestamp, appends it, and returns a copy of the stored entry.
func (l *Log) Record(
	action string,
	request any,
	scenario *portfolio.Scenario,
	constraintIDs []string,
	outcome Outcome,
	violations []constraints.Violation,
	warnings []constraints.Warning,
	duration time.Duration,
) Entry {
	l.mu.Lock()

	entry := Entry{
		ID:            l.nextID,
		RecordID:      uuid.New().String(),
		Timestamp:     time.Now(),
		Action:        action,
		Request:       request,
		Scenario:      scenario,
		ConstraintIDs: append([]string(nil), constraintIDs...),
		Outcome:       outcome,
		Violations:    append([]constraints.Violation(nil), violations...),
		Warnings:      append([]constraints.Warning(nil), warnings...),
		Duration:      duration,
	}
	l.nextID++
	l.entries = append(l.entries, entry)

	store := l.store
	l.mu.Unlock()

	if store != nil {
		l.mirror(entry)
	}

	l.logger.Debug("decision recorded",
		"entry_id", entry.ID,
		"action", entry.Action,
		"outcome", entry.Outcome,
		"violation_count", len(entry.Violations),
		"duration_ms", entry.Duration.Milliseconds(),
	)

	return entry
}

// mirror writes the entry to the attached storage backend.
func (l *Log) mirror(entry Entry) {
	record := &storage.Record{
		SequenceID:    entry.ID,
		RecordID:      entry.RecordID,
		Timestamp:     entry.Timestamp,
		Action:        entry.Action,
		Outcome:       string(entry.Outcome),
		ScenarioID:    "",
		ConstraintIDs: entry.ConstraintIDs,
		Violations:    len(entry.Violations),
		Warnings:      len(entry.Warnings),
		DurationMs:    entry.Duration.Milliseconds(),
	}
	if entry.Scenario != nil {
		record.ScenarioID = entry.Scenario.ID
	}

	if err := l.store.Store(context.Background(), record); err != nil {
		l.logger.Error("failed to mirror decision log entry",
			"entry_id", entry.ID,
			"error", err,
		)
	}
}

// GetAll returns a defensive copy of all entries in append order.
func (l *Log) GetAll() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// GetByID returns the entry with the given id, or false when no such
// entry exists. Lookup is a linear scan; the log is process-lifetime
// sized.
func (l *Log) GetByID(id int64) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			return l.entries[i], true
		}
	}
	return Entry{}, false
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear resets the log. Test and reset use only; not part of normal
// operation.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.nextID = 1
}
