package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/envdock/edk/internal/audit"
	"github.com/envdock/edk/internal/configs"
	"github.com/envdock/edk/internal/environment"
	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/link"
	"github.com/envdock/edk/internal/utils"
)

// ConfigEntry is one displayed config value.
type ConfigEntry struct {
	Key   configs.Key
	Value string
}

// ConfigShowResult lists the global config and the local link.
type ConfigShowResult struct {
	Entries []ConfigEntry

	// Link is nil when the directory is not linked.
	Link *link.Descriptor
}

// ConfigShow returns the stored config with the token masked.
func ConfigShow(ctx context.Context, s *Session) (*ConfigShowResult, error) {
	result := &ConfigShowResult{}
	for _, key := range configs.Keys {
		value, err := s.Config.Get(key)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		if key == configs.KeyToken {
			value = maskToken(value)
		}
		result.Entries = append(result.Entries, ConfigEntry{Key: key, Value: value})
	}

	if desc, err := s.links().Load(); err == nil {
		result.Link = desc
	}
	return result, nil
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// ConfigSetEnvOptions configures the default tier update.
type ConfigSetEnvOptions struct {
	// Env is asked for when empty.
	Env string
}

// ConfigSetEnvResult contains the updated descriptor.
type ConfigSetEnvResult struct {
	Env        environment.Tier
	Descriptor *link.Descriptor
}

// ConfigSetEnv changes the default tier recorded in the link descriptor,
// keeping any other fields it holds.
//
// Returns ErrNotLinked if the directory is not linked.
func ConfigSetEnv(ctx context.Context, s *Session, opts ConfigSetEnvOptions) (*ConfigSetEnvResult, error) {
	store := s.links()
	if _, err := store.Load(); err != nil {
		return nil, err
	}

	env, err := chooseEnv(s, opts.Env, "Select default environment for this folder:")
	if err != nil {
		return nil, err
	}

	desc, err := store.UpdateField(link.FieldEnv, env.String())
	if err != nil {
		return nil, err
	}
	return &ConfigSetEnvResult{Env: env, Descriptor: desc}, nil
}

// ConfigProfileOptions configures the profile update.
type ConfigProfileOptions struct {
	// Name is asked for when empty.
	Name string
}

// ConfigProfileResult contains the stored display name.
type ConfigProfileResult struct {
	Name string
}

// ConfigUpdateProfile changes the display name on the server and in the local config.
//
// Returns ErrEmptyName if the name is blank.
func ConfigUpdateProfile(ctx context.Context, s *Session, opts ConfigProfileOptions) (*ConfigProfileResult, error) {
	if !s.LoggedIn() {
		return nil, kerrors.ErrNotLoggedIn
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		current, _ := s.Config.Get(configs.KeyUserName)
		input, err := s.Prompt.Input("Enter your new display name:", current, validateName)
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(input)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	user, err := s.Service.UpdateProfile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	if user.Name != "" {
		name = user.Name
	}
	if err := s.Config.Set(configs.KeyUserName, name); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	return &ConfigProfileResult{Name: name}, nil
}

// ConfigPasswordOptions configures the password change. Empty fields are asked for.
type ConfigPasswordOptions struct {
	Current string
	New     string
}

// ConfigChangePassword replaces the account password.
func ConfigChangePassword(ctx context.Context, s *Session, opts ConfigPasswordOptions) error {
	if !s.LoggedIn() {
		return kerrors.ErrNotLoggedIn
	}

	current, next := opts.Current, opts.New
	var err error
	if current == "" {
		if current, err = s.Prompt.Password("Current Password:"); err != nil {
			return err
		}
	}
	if next == "" {
		if next, err = s.Prompt.Password("New Password:"); err != nil {
			return err
		}
	}

	if err := s.Service.ChangePassword(ctx, current, next); err != nil {
		return fmt.Errorf("changing password: %w", err)
	}
	return nil
}

// ConfigResetResult describes what a reset removed.
type ConfigResetResult struct {
	Cancelled     bool
	RemovedLink   bool
	ClearedConfig bool
}

// ConfigReset wipes the global config and removes the working directory's link descriptor.
func ConfigReset(ctx context.Context, s *Session) (*ConfigResetResult, error) {
	result := &ConfigResetResult{}
	ok, err := s.Prompt.Confirm("Are you sure you want to wipe all settings?", false)
	if err != nil {
		return nil, err
	}
	if !ok {
		result.Cancelled = true
		return result, nil
	}

	// Record before clearing so the entry still carries the user.
	s.record(audit.Entry{Operation: audit.OpReset})

	if err := s.Config.Clear(); err != nil {
		return nil, fmt.Errorf("clearing config: %w", err)
	}
	result.ClearedConfig = true

	store := s.links()
	linked, _ := utils.FileExists(s.Fs, store.Path())
	if err := store.Remove(); err != nil {
		return nil, fmt.Errorf("removing %s: %w", link.FileName, err)
	}
	result.RemovedLink = linked
	return result, nil
}
