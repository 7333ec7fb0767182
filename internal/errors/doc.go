// Package errors provides typed error values for the envdock CLI.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Link errors: descriptor state (ErrNotLinked, ErrCorruptLink)
//   - Environment errors: tier validation (ErrInvalidEnvironment, InvalidEnvironmentError)
//   - Sync errors: push/pull/rollback guards (ErrEmptySecretSet, ErrNoOpRollback)
//   - Remote errors: service failures (RemoteError wrapping ErrAccessDenied,
//     ErrNotFound or ErrNetworkUnreachable)
//   - Local I/O: IOError for filesystem writes
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Push(ctx, session, opts)
//	if errors.Is(err, kerrors.ErrNotLinked) {
//	    // Show user-friendly message
//	}
//
// Distinguish permission failures from transient ones:
//
//	if kerrors.IsAccessDenied(err) {
//	    // Terminal problem, do not suggest retrying
//	}
package errors
