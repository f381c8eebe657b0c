// Package decisionlog provides the append-only audit trail for
// governance actions.
//
// A Log assigns each recorded entry a monotonically increasing id from
// a per-instance atomic sequence and a capture timestamp. Entries are
// never mutated after creation and are retained for the lifetime of the
// process; durable persistence is an attachable concern served by the
// storage subpackage.
//
// Record is safe for concurrent use: multiple in-flight governance
// evaluations can append without lost entries or duplicate ids.
package decisionlog
