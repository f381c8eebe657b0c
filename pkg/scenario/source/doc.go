// Package source supplies portfolio scenarios from external stores.
//
// A Source loads the current set of scenarios on demand; the engine
// itself never persists anything. MemorySource serves fixed scenarios
// for tests and embedding, FileSource reads a YAML file or directory,
// and GitSource tracks a branch of a remote repository and exposes the
// HEAD commit for decision provenance. Watcher layers debounced
// filesystem notifications on top of a file-backed source to drive
// reloads.
package source
