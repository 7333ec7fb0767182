package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/envdock/edk/internal/audit"
	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/remote"
	"github.com/envdock/edk/internal/secrets"
)

// PullOptions configures the pull workflow.
type PullOptions struct {
	Env  string
	File string
}

// Pull downloads the environment's secrets into the local env file.
//
// Returns ErrNotLinked or ErrCorruptLink if the directory is not linked.
// Returns ErrInvalidEnvironment if the tier is not dev, staging or prod.
func Pull(ctx context.Context, s *Session, opts PullOptions) (*secrets.PullResult, error) {
	result, err := s.engine().Pull(ctx, secrets.PullOptions{Env: opts.Env, File: opts.File})
	if err != nil {
		return nil, err
	}
	s.record(audit.Entry{Operation: audit.OpPull, ProjectID: result.ProjectID, Env: result.Env.String(), Count: len(result.Secrets)})
	return result, nil
}

// PushOptions configures the push workflow.
type PushOptions struct {
	Env  string
	File string
}

// Push uploads the local env file as the environment's complete secret set,
// after the user confirms the overwrite.
//
// Returns ErrEmptySecretSet if the file has no valid entries.
// Returns ErrFileNotFound if the source file is missing.
func Push(ctx context.Context, s *Session, opts PushOptions) (*secrets.PushResult, error) {
	var promptErr error
	result, err := s.engine().Push(ctx, secrets.PushOptions{
		Env:  opts.Env,
		File: opts.File,
		Confirm: func(plan secrets.PushPlan) bool {
			title := fmt.Sprintf("Overwrite cloud secrets in %s with %d secrets from %s?",
				strings.ToUpper(plan.Env.String()), plan.Count, displayPath(s.Dir, plan.Path))
			ok, err := s.Prompt.Confirm(title, false)
			promptErr = err
			return err == nil && ok
		},
	})
	if promptErr != nil {
		return nil, promptErr
	}
	if err != nil {
		return nil, err
	}
	if result.State == secrets.Completed {
		s.record(audit.Entry{Operation: audit.OpPush, ProjectID: result.ProjectID, Env: result.Env.String(), Count: result.Count})
	}
	return result, nil
}

// VersionsOptions configures the versions workflow.
type VersionsOptions struct {
	Env string
}

// Versions lists the version history of the environment.
func Versions(ctx context.Context, s *Session, opts VersionsOptions) (*secrets.VersionsResult, error) {
	return s.engine().Versions(ctx, secrets.VersionsOptions{Env: opts.Env})
}

// RollbackOptions configures the rollback workflow.
type RollbackOptions struct {
	Env string

	// Version to restore. Zero asks the user to pick one.
	Version int
}

// Rollback restores a previous version of the environment and mirrors it into .env.
//
// Returns ErrNoVersions if only the active version exists.
// Returns ErrNoOpRollback if Version is the active version.
// Returns ErrVersionNotFound if Version is not in the history.
func Rollback(ctx context.Context, s *Session, opts RollbackOptions) (*secrets.RollbackResult, error) {
	engine := s.engine()

	versions, err := engine.Versions(ctx, secrets.VersionsOptions{Env: opts.Env})
	if err != nil {
		return nil, err
	}
	history := versions.History

	target := opts.Version
	if target == 0 {
		available := history.Inactive()
		if len(available) == 0 {
			return nil, fmt.Errorf("%s: %w", versions.Env, kerrors.ErrNoVersions)
		}
		options := make([]prompt.Option, len(available))
		for i, v := range available {
			options[i] = prompt.Option{Label: VersionLabel(v), Value: fmt.Sprint(v.Version)}
		}
		selected, err := s.Prompt.Select("Select a version to restore:", options)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Sscan(selected, &target); err != nil {
			return nil, fmt.Errorf("parsing selected version %q: %w", selected, err)
		}
	}

	var promptErr error
	result, err := engine.Rollback(ctx, secrets.RollbackOptions{
		Env:     opts.Env,
		Version: target,
		History: history,
		Confirm: func(plan secrets.RollbackPlan) bool {
			title := fmt.Sprintf("Overwrite the CURRENT secrets in %s (v%d) with v%d?",
				plan.Env, plan.Active, plan.Target.Version)
			ok, err := s.Prompt.Confirm(title, false)
			promptErr = err
			return err == nil && ok
		},
	})
	if promptErr != nil {
		return nil, promptErr
	}
	if err != nil {
		return nil, err
	}
	if result.State == secrets.Completed {
		s.record(audit.Entry{Operation: audit.OpRollback, ProjectID: result.ProjectID, Env: result.Env.String(), Version: result.Version, Count: len(result.Secrets)})
	}
	return result, nil
}

// VersionLabel renders a history entry for selection menus.
func VersionLabel(v remote.Version) string {
	author := "Unknown"
	if v.CreatedBy != nil && v.CreatedBy.Name != "" {
		author = v.CreatedBy.Name
	}
	return fmt.Sprintf("v%d - %s (by %s)", v.Version, v.CreatedAt.Local().Format("2006-01-02 15:04"), author)
}
