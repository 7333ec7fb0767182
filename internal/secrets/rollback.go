package secrets

import (
	"context"
	"fmt"

	"github.com/envdock/edk/internal/dotenv"
	"github.com/envdock/edk/internal/environment"
	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/remote"
)

// VersionsOptions configures a history lookup.
type VersionsOptions struct {
	Env string
}

// VersionsResult is the version history of the resolved environment.
type VersionsResult struct {
	ProjectID string
	Env       environment.Tier
	History   *remote.VersionHistory
}

// Versions fetches the version history of the resolved environment.
func (e *Engine) Versions(ctx context.Context, opts VersionsOptions) (*VersionsResult, error) {
	t, err := e.resolve(opts.Env)
	if err != nil {
		return nil, err
	}

	history, err := e.remote.FetchVersionHistory(ctx, t.projectID, t.env)
	if err != nil {
		return nil, fmt.Errorf("fetching %s versions: %w", t.env, err)
	}
	return &VersionsResult{ProjectID: t.projectID, Env: t.env, History: history}, nil
}

// RollbackPlan is the restore about to be requested, shown to the confirmation predicate.
type RollbackPlan struct {
	ProjectID string
	Env       environment.Tier
	Active    int
	Target    remote.Version
}

// RollbackOptions configures a rollback.
type RollbackOptions struct {
	// Env is the --env flag value; empty falls back to the link default.
	Env string

	// Version is the history entry to restore.
	Version int

	// History skips the history fetch when the caller already holds it.
	History *remote.VersionHistory

	// File is the local file mirrored after the restore. Defaults to .env.
	File string

	// Confirm gates the remote rollback. Returning false aborts it.
	Confirm func(RollbackPlan) bool
}

// RollbackResult describes a rollback that reached a terminal state.
type RollbackResult struct {
	State     State
	ProjectID string
	Env       environment.Tier
	Version   int
	// Path is empty when the service returned no variables and the local
	// file was not written.
	Path    string
	Secrets dotenv.SecretMap
}

// Rollback restores a prior version of the environment and mirrors it into the local file.
//
// The target must be present in the environment's history and must differ
// from the active version; both are checked before the rollback call.
func (e *Engine) Rollback(ctx context.Context, opts RollbackOptions) (*RollbackResult, error) {
	t, err := e.resolve(opts.Env)
	if err != nil {
		return nil, err
	}

	history := opts.History
	if history == nil {
		history, err = e.remote.FetchVersionHistory(ctx, t.projectID, t.env)
		if err != nil {
			return nil, fmt.Errorf("fetching %s versions: %w", t.env, err)
		}
	}

	if opts.Version == history.ActiveVersion {
		return nil, fmt.Errorf("v%d in %s: %w", opts.Version, t.env, kerrors.ErrNoOpRollback)
	}
	version, ok := history.Find(opts.Version)
	if !ok {
		return nil, fmt.Errorf("v%d in %s: %w", opts.Version, t.env, kerrors.ErrVersionNotFound)
	}

	result := &RollbackResult{
		State:     Aborted,
		ProjectID: t.projectID,
		Env:       t.env,
		Version:   opts.Version,
	}

	plan := RollbackPlan{ProjectID: t.projectID, Env: t.env, Active: history.ActiveVersion, Target: version}
	if opts.Confirm == nil || !opts.Confirm(plan) {
		return result, nil
	}

	restored, err := e.remote.Rollback(ctx, t.projectID, t.env, opts.Version)
	if err != nil {
		return nil, fmt.Errorf("rolling back %s to v%d: %w", t.env, opts.Version, err)
	}

	result.State = Completed

	// No variables in the response: the local file is left as it is.
	if restored == nil {
		return result, nil
	}

	path := e.localPath(opts.File)
	if err := dotenv.WriteFile(e.fs, path, restored); err != nil {
		return nil, err
	}

	result.Path = path
	result.Secrets = restored
	return result, nil
}
