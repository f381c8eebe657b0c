package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig contains configuration for the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/decisions.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, applies pragmas, and creates the
// schema if needed.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "decisionlog.storage.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite decision log storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize applies pragmas and creates the schema.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(insertSchemaVersion, schemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(getSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != schemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", schemaVersion, version))
	}

	return nil
}

// Store persists one record.
func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	constraintIDs, err := json.Marshal(record.ConstraintIDs)
	if err != nil {
		return NewStorageError("sqlite", "marshal_constraint_ids", err)
	}

	_, err = s.db.ExecContext(ctx, insertRecord,
		record.SequenceID,
		record.RecordID,
		record.Timestamp.UTC().Format(time.RFC3339Nano),
		record.Action,
		record.Outcome,
		record.ScenarioID,
		string(constraintIDs),
		record.Violations,
		record.Warnings,
		record.DurationMs,
	)
	if err != nil {
		return NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query returns records matching the filters, ordered by sequence id.
func (s *SQLiteStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	where, args := buildWhere(query)

	stmt := selectRecords + where + " ORDER BY sequence_id ASC"
	if query != nil && query.Limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	results := []*Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query_rows", err)
	}

	return results, nil
}

// Count returns the number of records matching the filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *Query) (int64, error) {
	where, args := buildWhere(query)

	var count int64
	err := s.db.QueryRowContext(ctx, countRecords+where, args...).Scan(&count)
	if err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// buildWhere translates a Query into a WHERE clause and arguments.
func buildWhere(query *Query) (string, []any) {
	if query == nil {
		return "", nil
	}

	var clauses []string
	var args []any

	if query.StartTime != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, query.StartTime.UTC().Format(time.RFC3339Nano))
	}
	if query.EndTime != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, query.EndTime.UTC().Format(time.RFC3339Nano))
	}
	if query.ScenarioID != "" {
		clauses = append(clauses, "scenario_id = ?")
		args = append(args, query.ScenarioID)
	}
	if query.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, query.Outcome)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanRecord reads one row into a Record.
func scanRecord(rows *sql.Rows) (*Record, error) {
	var record Record
	var timestamp string
	var constraintIDs string

	err := rows.Scan(
		&record.SequenceID,
		&record.RecordID,
		&timestamp,
		&record.Action,
		&record.Outcome,
		&record.ScenarioID,
		&constraintIDs,
		&record.Violations,
		&record.Warnings,
		&record.DurationMs,
	)
	if err != nil {
		return nil, err
	}

	record.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", timestamp, err)
	}

	if err := json.Unmarshal([]byte(constraintIDs), &record.ConstraintIDs); err != nil {
		return nil, fmt.Errorf("invalid constraint_ids %q: %w", constraintIDs, err)
	}

	return &record, nil
}
