// Package workflows provides high-level orchestration for edk commands.
//
// Workflows coordinate multiple packages (link, secrets, remote, configs,
// audit, prompt) to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns like
// flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds a Session and calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading the link descriptor and user config
//   - Validating prerequisites (login, link, environment tier)
//   - Asking the user through the session's Prompter
//   - Performing the remote and local operations
//   - Recording local audit trail entries
//
// # Available Workflows
//
//   - Login, BrowserLogin, Logout, Whoami: session management
//   - Link: associate the working directory with a project
//   - Pull, Push, Rollback, Versions: secret sync
//   - Status, History: project inspection
//   - TeamList, TeamAdd, TeamUpdate, TeamRemove: membership
//   - TokensList, TokensCreate, TokensRevoke: CI tokens
//   - ConfigShow, ConfigSetEnv, ConfigUpdateProfile, ConfigChangePassword, ConfigReset
//   - Run: execute a command with secrets injected
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Push(ctx, session, opts)
//	if errors.Is(err, kerrors.ErrEmptySecretSet) {
//	    // Show user-friendly message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It bounds every remote call and the browser login wait.
package workflows
