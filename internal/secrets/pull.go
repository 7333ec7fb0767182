package secrets

import (
	"context"
	"fmt"

	"github.com/envdock/edk/internal/dotenv"
	"github.com/envdock/edk/internal/environment"
)

// PullOptions configures a pull.
type PullOptions struct {
	// Env is the --env flag value; empty falls back to the link default.
	Env string

	// File is the destination, relative to the linked directory. Defaults to .env.
	File string
}

// PullResult describes a completed pull.
type PullResult struct {
	ProjectID string
	Env       environment.Tier
	Path      string
	Secrets   dotenv.SecretMap
}

// Pull fetches the remote secret set and overwrites the local env file with it.
func (e *Engine) Pull(ctx context.Context, opts PullOptions) (*PullResult, error) {
	t, err := e.resolve(opts.Env)
	if err != nil {
		return nil, err
	}

	secrets, err := e.remote.FetchSecrets(ctx, t.projectID, t.env)
	if err != nil {
		return nil, fmt.Errorf("pulling %s secrets: %w", t.env, err)
	}

	path := e.localPath(opts.File)
	if err := dotenv.WriteFile(e.fs, path, secrets); err != nil {
		return nil, err
	}

	return &PullResult{
		ProjectID: t.projectID,
		Env:       t.env,
		Path:      path,
		Secrets:   secrets,
	}, nil
}
