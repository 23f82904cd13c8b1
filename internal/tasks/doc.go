// Package tasks implements long-running syllabus operations: remote state
// sync, the background mirror, and progress report exports.
//
// The core abstraction is SyncEngine, which orchestrates pulls and pushes
// against the optional sync backend. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
//
// # Merge Semantics
//
// Pull merges the remote state over the local one, remote winning on
// conflicting ids. There is no per-field merge and no timestamp comparison;
// the backend is treated as the source of truth for any id it knows about.
//
// # Mirror
//
// Mirror watches a tracker and pushes the full local state to the backend
// after a quiet window, rate limited so rapid checking sprees do not hammer
// the API. Mirror failures are logged and dropped; the local copy is always
// authoritative for the running process.
package tasks
