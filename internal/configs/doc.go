// Package configs manages the global user configuration for edk.
//
// Configuration is stored in TOML format at
// $XDG_CONFIG_HOME/envdock/config.toml (override the directory with
// ENVDOCK_CONFIG_DIR). It records:
//
//   - The session token issued at login
//   - The logged-in user's display name and email
//   - An optional API base URL
//
// # Store
//
// Callers read and write the config through the Store interface
// (Get, Set, Delete, Clear) keyed by the typed Key constants. Each key
// maps onto a named field of UserConfig; there is no generic path
// addressing. FileStore persists to disk through an afero filesystem and
// MemoryStore backs tests.
//
// The per-directory project link (.envdock.json) is not part of this
// package; see internal/link.
package configs
