package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Link errors indicate problems with the local project link descriptor.
var (
	// ErrNotLinked indicates the working directory has no .envdock.json descriptor.
	ErrNotLinked = errors.New("directory is not linked to a project")

	// ErrCorruptLink indicates the descriptor exists but is malformed.
	ErrCorruptLink = errors.New("project link descriptor is invalid")

	// ErrAlreadyLinked indicates the directory is linked and the caller declined to overwrite it.
	ErrAlreadyLinked = errors.New("directory is already linked")
)

// Environment errors indicate an invalid environment tier.
var (
	// ErrInvalidEnvironment indicates a value outside the allowed environment tiers.
	ErrInvalidEnvironment = errors.New("invalid environment")
)

// Sync errors indicate a pull, push or rollback that cannot proceed.
var (
	// ErrEmptySecretSet indicates the push source parsed to zero entries.
	ErrEmptySecretSet = errors.New("no valid secrets found in file")

	// ErrNoOpRollback indicates the rollback target is already the active version.
	ErrNoOpRollback = errors.New("target version is already active")

	// ErrVersionNotFound indicates the rollback target is not in the environment's history.
	ErrVersionNotFound = errors.New("version not found in history")

	// ErrNoVersions indicates the environment has no version other than the active one.
	ErrNoVersions = errors.New("no versions available")

	// ErrCancelled indicates the user declined a confirmation or aborted a prompt.
	ErrCancelled = errors.New("operation cancelled")

	// ErrNotInteractive indicates a prompt was needed but no terminal is attached.
	ErrNotInteractive = errors.New("input required but terminal is not interactive")
)

// Remote errors classify failures reported by the secrets service.
var (
	// ErrAccessDenied indicates the service rejected the call for lack of permission.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound indicates the requested remote resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetworkUnreachable indicates the service could not be reached at all.
	ErrNetworkUnreachable = errors.New("network unreachable")
)

// Session errors indicate issues with the stored credentials.
var (
	// ErrNotLoggedIn indicates no session token is stored.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrAlreadyLoggedIn indicates a session token is already stored.
	ErrAlreadyLoggedIn = errors.New("already logged in")

	// ErrInvalidEmail indicates the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
)

// Project errors indicate issues with team members, tokens or input.
var (
	// ErrMemberNotFound indicates the email is not a member of the project.
	ErrMemberNotFound = errors.New("member not found")

	// ErrSelfModification indicates a user attempted to change or remove their own membership.
	ErrSelfModification = errors.New("cannot modify your own membership")

	// ErrTokenNotFound indicates no CI token has the given name.
	ErrTokenNotFound = errors.New("token not found")

	// ErrInvalidRole indicates a role outside viewer, editor and admin.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmptyName indicates a required name was blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoCommand indicates run was invoked without a command.
	ErrNoCommand = errors.New("no command provided")
)

// InvalidEnvironmentError reports an environment value outside the allowed set.
type InvalidEnvironmentError struct {
	Value   string
	Allowed []string
}

func (e *InvalidEnvironmentError) Error() string {
	return fmt.Sprintf("invalid environment %q: must be one of %s", e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidEnvironmentError) Unwrap() error {
	return ErrInvalidEnvironment
}

// RemoteKind tells whether a failed remote call was reading or writing.
type RemoteKind int

const (
	RemoteFetch RemoteKind = iota
	RemoteWrite
)

func (k RemoteKind) String() string {
	if k == RemoteWrite {
		return "write"
	}
	return "fetch"
}

// RemoteError wraps a failed call to the secrets service.
//
// Unwrap exposes the classified cause (ErrAccessDenied, ErrNotFound,
// ErrNetworkUnreachable) alongside the underlying error, so both
// errors.Is(err, ErrAccessDenied) and errors.As on the transport error work.
type RemoteError struct {
	Op      string
	Kind    RemoteKind
	Status  int
	Message string
	Cause   error
	Err     error
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s failed (%d): %s", e.Op, e.Status, msg)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, msg)
}

func (e *RemoteError) Unwrap() []error {
	var errs []error
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsAccessDenied reports whether err is a remote permission failure.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IOError wraps a local filesystem failure for a specific path.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
