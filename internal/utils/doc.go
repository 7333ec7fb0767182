// Package utils provides shared helpers for the edk CLI.
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: whole-file replace through a temp file and rename
//   - FileExists: regular-file existence check on an afero filesystem
//   - EnvFileIgnored: checks whether .gitignore covers .env
//
// # String Utilities
//
//   - IsValidEmail: loose email format check used by login and team add
//   - Pluralize: "1 secret" / "3 secrets"
//
// # Terminal and I/O Utilities
//
//   - ReadPassword: hidden password entry via golang.org/x/term
//   - ReadStdin: reads piped input (login --password-stdin)
//   - IsInteractive: whether prompts can be shown at all
package utils
