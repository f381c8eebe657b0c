// Package storage provides durable backends for mirroring decision log
// entries. The in-memory log in the parent package remains the source
// of truth; backends here serve retention and out-of-process querying.
//
// Two implementations are provided: MemoryStorage for tests and
// SQLiteStorage for durable single-node deployments.
package storage
