// Package prompt asks the user questions: selections, free text, confirmations
// and hidden passwords.
//
// Workflows depend on the Prompter interface; the CLI picks HuhPrompter when a
// terminal is attached and NonInteractive otherwise.
package prompt

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/utils"
)

// Option represents a single entry in a selection menu.
type Option struct {
	Label string // Display text
	Value string // Return value
}

// Prompter defines the interactive input the workflows need.
type Prompter interface {
	Select(title string, options []Option) (string, error)
	Input(title, initial string, validate func(string) error) (string, error)
	Confirm(title string, def bool) (bool, error)
	Password(title string) (string, error)
}

// New returns a HuhPrompter on a terminal and a NonInteractive prompter otherwise.
// With assumeYes every confirmation is answered yes without asking.
func New(assumeYes bool) Prompter {
	if utils.IsInteractive() {
		return HuhPrompter{AssumeYes: assumeYes}
	}
	return NonInteractive{AssumeYes: assumeYes}
}

var runSelectPrompt = func(title string, options []huh.Option[string], selected *string) error {
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Height(12).
		Value(selected).
		Run()
}

var runInputPrompt = func(title string, validate func(string) error, input *string) error {
	field := huh.NewInput().
		Title(title).
		Value(input)
	if validate != nil {
		field.Validate(validate)
	}
	return field.Run()
}

var runConfirmPrompt = func(title string, confirmed *bool) error {
	return huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(confirmed).
		Run()
}

var runPasswordPrompt = func(title string, password *string) error {
	return huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(password).
		Run()
}

var readPassword = utils.ReadPassword

// HuhPrompter implements Prompter using the huh TUI library.
type HuhPrompter struct {
	AssumeYes bool
}

func (p HuhPrompter) Select(title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("prompt select: no options")
	}
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var selected string
	if err := runSelectPrompt(title, huhOptions, &selected); err != nil {
		return "", wrap("prompt select", err)
	}
	return selected, nil
}

func (p HuhPrompter) Input(title, initial string, validate func(string) error) (string, error) {
	input := initial
	if err := runInputPrompt(title, validate, &input); err != nil {
		return "", wrap("prompt input", err)
	}
	return input, nil
}

func (p HuhPrompter) Confirm(title string, def bool) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	confirmed := def
	if err := runConfirmPrompt(title, &confirmed); err != nil {
		return false, wrap("prompt confirm", err)
	}
	return confirmed, nil
}

// Password reads hidden input, falling back to a raw terminal read when the
// TUI cannot start.
func (p HuhPrompter) Password(title string) (string, error) {
	var password string
	err := runPasswordPrompt(title, &password)
	if err == nil {
		return password, nil
	}
	if errors.Is(err, huh.ErrUserAborted) {
		return "", kerrors.ErrCancelled
	}
	password, fallbackErr := readPassword(title + " ")
	if fallbackErr != nil {
		return "", fmt.Errorf("prompt password: %w", errors.Join(err, fallbackErr))
	}
	return password, nil
}

func wrap(op string, err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return kerrors.ErrCancelled
	}
	return fmt.Errorf("%s: %w", op, err)
}

// NonInteractive answers what it can without a terminal and refuses the rest.
type NonInteractive struct {
	AssumeYes bool
}

func (p NonInteractive) Select(title string, _ []Option) (string, error) {
	return "", fmt.Errorf("%s: %w", title, kerrors.ErrNotInteractive)
}

// Input returns initial when it validates, since there is nobody to ask.
func (p NonInteractive) Input(title, initial string, validate func(string) error) (string, error) {
	if initial == "" {
		return "", fmt.Errorf("%s: %w", title, kerrors.ErrNotInteractive)
	}
	if validate != nil {
		if err := validate(initial); err != nil {
			return "", err
		}
	}
	return initial, nil
}

// Confirm answers yes only when AssumeYes is set. The default is ignored so
// scripts never perform a destructive step by accident.
func (p NonInteractive) Confirm(string, bool) (bool, error) {
	return p.AssumeYes, nil
}

func (p NonInteractive) Password(title string) (string, error) {
	return "", fmt.Errorf("%s: %w", title, kerrors.ErrNotInteractive)
}
