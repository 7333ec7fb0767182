package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/remote"
	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

// ExitError ends the process with Code. The user has already been told why.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if s.Active() {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pausingPrompter stops the spinner while the user is being asked something.
type pausingPrompter struct {
	prompt.Prompter
	spinner *spinner.Spinner
}

func (p pausingPrompter) hold() func() {
	return pauseSpinner(p.spinner)
}

// pauseSpinner stops s if it is running and returns the function that restarts it.
func pauseSpinner(s *spinner.Spinner) (resume func()) {
	if !s.Active() {
		return func() {}
	}
	s.Stop()
	return s.Start
}

func (p pausingPrompter) Select(title string, options []prompt.Option) (string, error) {
	defer p.hold()()
	return p.Prompter.Select(title, options)
}

func (p pausingPrompter) Input(title, initial string, validate func(string) error) (string, error) {
	defer p.hold()()
	return p.Prompter.Input(title, initial, validate)
}

func (p pausingPrompter) Confirm(title string, def bool) (bool, error) {
	defer p.hold()()
	return p.Prompter.Confirm(title, def)
}

func (p pausingPrompter) Password(title string) (string, error) {
	defer p.hold()()
	return p.Prompter.Password(title)
}

// withSpinner returns a copy of the session whose prompts pause s.
func withSpinner(s *spinner.Spinner) *workflows.Session {
	copied := *session
	copied.Prompt = pausingPrompter{Prompter: session.Prompt, spinner: s}
	return &copied
}

// formatError turns a workflow error into the lines shown to the user.
// action completes "Failed to ..." for errors without a dedicated message.
func formatError(action string, err error) string {
	var envErr *kerrors.InvalidEnvironmentError
	var ioErr *kerrors.IOError
	var remoteErr *kerrors.RemoteError

	switch {
	case errors.Is(err, kerrors.ErrCancelled):
		return ui.Muted.Sprint("Cancelled.")
	case errors.Is(err, kerrors.ErrNotInteractive):
		return ui.Error.Sprint("✗") + " Input is required but the terminal is not interactive\n" +
			ui.Info.Sprint("→") + " Pass the value as a flag, or " + ui.Flag.Sprint("--yes") + " to confirm"
	case errors.Is(err, kerrors.ErrNotLinked):
		return ui.Error.Sprint("✗") + " This folder is not linked to a project\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("edk link") + " first"
	case errors.Is(err, kerrors.ErrCorruptLink):
		return ui.Error.Sprint("✗") + " " + ui.Path.Sprint(".envdock.json") + " is invalid\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("edk link") + " to relink this folder\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	case errors.As(err, &envErr):
		return ui.Error.Sprint("✗") + " Invalid environment: " + ui.Highlight.Sprint(envErr.Value) + "\n" +
			ui.Info.Sprint("→") + " Please specify one of: " + strings.Join(envErr.Allowed, ", ")
	case errors.Is(err, kerrors.ErrEmptySecretSet):
		return ui.Error.Sprint("✗") + " No valid secrets found in the file, nothing was uploaded\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, kerrors.ErrFileNotFound):
		return ui.Error.Sprint("✗") + " File not found\n" + ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, kerrors.ErrNoOpRollback):
		return ui.Warning.Sprint("⚠") + " That version is already active, nothing to restore"
	case errors.Is(err, kerrors.ErrVersionNotFound):
		return ui.Error.Sprint("✗") + " Version not found in the history\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("edk versions") + " to list available versions"
	case errors.Is(err, kerrors.ErrNoVersions):
		return ui.Warning.Sprint("⚠") + " No versions available for rollback"
	case errors.Is(err, kerrors.ErrAlreadyLinked):
		return ui.Muted.Sprint("Cancelled.") + " The existing link was kept."
	case errors.Is(err, kerrors.ErrNotLoggedIn):
		return ui.Error.Sprint("⛔") + " You are not logged in or your session expired\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("edk login") + " to authenticate"
	case errors.Is(err, kerrors.ErrAlreadyLoggedIn):
		return ui.Warning.Sprint("⚠") + " You are already logged in\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("edk logout") + " first to switch accounts"
	case errors.Is(err, kerrors.ErrNetworkUnreachable):
		return ui.Error.Sprint("✗") + " Network unreachable. Check your internet connection."
	case kerrors.IsAccessDenied(err):
		msg := ui.Error.Sprint("⛔") + " Access Denied: you do not have permission to " + action
		if errors.As(err, &remoteErr) && remoteErr.Message != "" {
			msg += "\n" + ui.Muted.Sprint(remoteErr.Message)
		}
		return msg
	case errors.Is(err, kerrors.ErrNotFound):
		return ui.Error.Sprint("✗") + " Not found: the project or resource no longer exists\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, kerrors.ErrSelfModification):
		return ui.Error.Sprint("✗") + " You cannot change or remove your own membership"
	case errors.Is(err, kerrors.ErrMemberNotFound),
		errors.Is(err, kerrors.ErrTokenNotFound),
		errors.Is(err, kerrors.ErrInvalidEmail),
		errors.Is(err, kerrors.ErrInvalidRole),
		errors.Is(err, kerrors.ErrEmptyName),
		errors.Is(err, kerrors.ErrNoCommand):
		return ui.Error.Sprint("✗") + " " + capitalize(err.Error())
	case errors.As(err, &ioErr):
		return ui.Error.Sprint("✗") + " Could not write " + ui.Path.Sprint(ioErr.Path) + "\n" +
			ui.Error.Sprint("Error: ") + ioErr.Err.Error()
	default:
		return ui.Error.Sprint("✗") + " Failed to " + action + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// displayPath shows path relative to the working directory when it lives inside it.
func displayPath(path string) string {
	rel, err := filepath.Rel(session.Dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func personName(p *remote.Person) string {
	switch {
	case p == nil:
		return "Unknown"
	case p.Name != "":
		return p.Name
	case p.Email != "":
		return p.Email
	default:
		return "Unknown"
	}
}
