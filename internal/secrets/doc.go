// Package secrets implements the secret sync engine: pull, push and rollback
// between a linked directory's .env file and the remote secrets service.
//
// # Ordering
//
// Every operation runs the same prefix before touching the network:
//
//  1. Load the link descriptor (ErrNotLinked, ErrCorruptLink)
//  2. Resolve the environment tier (ErrInvalidEnvironment)
//  3. Run operation-specific local guards (ErrEmptySecretSet, ErrNoOpRollback)
//
// Local files are written only after the remote call succeeds, so a failed
// or cancelled operation leaves the .env file byte-for-byte unchanged.
//
// # Full replace
//
// Pull overwrites the local file with the remote set and push replaces the
// remote set with the local file. Neither merges. Rollback restores a prior
// remote version and mirrors it into the local file.
//
// # Confirmation
//
// Push and Rollback are destructive on the remote side and only proceed when
// their Confirm predicate returns true. A nil predicate counts as a refusal.
package secrets
