package secrets

import (
	"context"
	"fmt"

	"github.com/envdock/edk/internal/dotenv"
	"github.com/envdock/edk/internal/environment"
	kerrors "github.com/envdock/edk/internal/errors"
)

// PushPlan is what a push is about to send, shown to the confirmation predicate.
type PushPlan struct {
	ProjectID string
	Env       environment.Tier
	Path      string
	Count     int
}

// PushOptions configures a push.
type PushOptions struct {
	// Env is the --env flag value; empty falls back to the link default.
	Env string

	// File is the source, relative to the linked directory. Defaults to .env.
	File string

	// Confirm gates the remote write. Returning false aborts the push.
	Confirm func(PushPlan) bool
}

// PushResult describes a push that reached a terminal state.
type PushResult struct {
	State     State
	ProjectID string
	Env       environment.Tier
	Count     int
}

// Push replaces the remote secret set with the parsed contents of the local file.
//
// A source that parses to zero entries fails with ErrEmptySecretSet and the
// remote service is never called.
func (e *Engine) Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	t, err := e.resolve(opts.Env)
	if err != nil {
		return nil, err
	}

	path := e.localPath(opts.File)
	secrets, err := dotenv.ReadFile(e.fs, path)
	if err != nil {
		return nil, err
	}
	if len(secrets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, kerrors.ErrEmptySecretSet)
	}

	result := &PushResult{
		State:     Aborted,
		ProjectID: t.projectID,
		Env:       t.env,
		Count:     len(secrets),
	}

	plan := PushPlan{ProjectID: t.projectID, Env: t.env, Path: path, Count: len(secrets)}
	if opts.Confirm == nil || !opts.Confirm(plan) {
		return result, nil
	}

	if err := e.remote.ReplaceSecrets(ctx, t.projectID, t.env, secrets); err != nil {
		return nil, fmt.Errorf("pushing %s secrets: %w", t.env, err)
	}

	result.State = Completed
	return result, nil
}
