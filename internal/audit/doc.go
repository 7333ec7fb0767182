// Package audit keeps a local trail of the sync operations run on this machine.
//
// The server keeps its own project audit log; this trail complements it with
// what happened locally (which directory, which tier, how many secrets) and
// works offline. It backs `edk history --local`.
//
// # Log Format
//
// The trail is stored as JSON Lines (one JSON object per line) in the data
// directory:
//
//	$XDG_DATA_HOME/envdock/audit.jsonl
//
// Each entry contains:
//   - A random UUID
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - User email
//   - Operation name
//   - Operation-specific details (project, tier, count, version)
//
// Secret values are never recorded.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries to parse the trail for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
