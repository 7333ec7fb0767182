package workflows

import (
	"context"
	"fmt"

	"github.com/envdock/edk/internal/environment"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	Env string
}

// StatusResult contains the linked project's current state.
type StatusResult struct {
	ProjectID     string
	ProjectName   string
	Env           environment.Tier
	ActiveVersion int
}

// Status reports the linked project, the resolved tier and its active version.
//
// Returns ErrNotLinked if the directory is not linked.
// Returns ErrInvalidEnvironment if the tier is not dev, staging or prod.
func Status(ctx context.Context, s *Session, opts StatusOptions) (*StatusResult, error) {
	projectID, env, err := s.engine().Resolve(opts.Env)
	if err != nil {
		return nil, err
	}

	project, err := s.Service.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching project: %w", err)
	}

	history, err := s.Service.FetchVersionHistory(ctx, projectID, env)
	if err != nil {
		return nil, fmt.Errorf("fetching %s versions: %w", env, err)
	}

	return &StatusResult{
		ProjectID:     projectID,
		ProjectName:   project.Name,
		Env:           env,
		ActiveVersion: history.ActiveVersion,
	}, nil
}
