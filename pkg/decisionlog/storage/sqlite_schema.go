package storage

// schemaVersion is bumped on any incompatible schema change.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS decision_records (
	sequence_id    INTEGER NOT NULL,
	record_id      TEXT NOT NULL PRIMARY KEY,
	timestamp      TEXT NOT NULL,
	action         TEXT NOT NULL,
	outcome        TEXT NOT NULL,
	scenario_id    TEXT NOT NULL,
	constraint_ids TEXT NOT NULL,
	violations     INTEGER NOT NULL,
	warnings       INTEGER NOT NULL,
	duration_ms    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decision_records_timestamp
	ON decision_records (timestamp);
CREATE INDEX IF NOT EXISTS idx_decision_records_scenario
	ON decision_records (scenario_id);
CREATE INDEX IF NOT EXISTS idx_decision_records_outcome
	ON decision_records (outcome);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL PRIMARY KEY
);
`

const insertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version) VALUES (?);
`

const getSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertRecord = `
INSERT INTO decision_records (
	sequence_id, record_id, timestamp, action, outcome, scenario_id,
	constraint_ids, violations, warnings, duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const selectRecords = `
SELECT sequence_id, record_id, timestamp, action, outcome, scenario_id,
	constraint_ids, violations, warnings, duration_ms
FROM decision_records
`

const countRecords = `
SELECT COUNT(*) FROM decision_records
`
