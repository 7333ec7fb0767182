package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/envdock/edk/internal/audit"
	"github.com/envdock/edk/internal/environment"
	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/link"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/secrets"
	"github.com/envdock/edk/internal/utils"
)

const createNewProject = "\x00create"

// LinkOptions configures the link workflow. Any field left empty is asked for.
type LinkOptions struct {
	// Force overwrites an existing descriptor without asking.
	Force bool

	// ProjectID links an existing project directly.
	ProjectID string

	// NewProject creates a project with this name instead of selecting one.
	NewProject string

	// Env is the default tier recorded in the descriptor.
	Env string

	// Pull decides the post-link pull for existing projects. Nil asks.
	Pull *bool
}

// LinkResult contains the outcome of a link operation.
type LinkResult struct {
	ProjectID   string
	ProjectName string
	Env         environment.Tier

	// Created is true when the project was created by this link.
	Created bool

	// Pulled is set when secrets were pulled after linking.
	Pulled *secrets.PullResult

	// PullErr holds a failed post-link pull. The link itself still succeeded.
	PullErr error

	// EnvNotIgnored is true when a .gitignore exists but does not cover .env.
	EnvNotIgnored bool
}

// Link associates the working directory with a remote project.
//
// Returns ErrAlreadyLinked if the directory is linked and the user declines
// to overwrite. Returns ErrEmptyName if a new project name is blank.
func Link(ctx context.Context, s *Session, opts LinkOptions) (*LinkResult, error) {
	store := s.links()

	if exists, _ := utils.FileExists(s.Fs, store.Path()); exists && !opts.Force {
		overwrite, err := s.Prompt.Confirm("This folder is already linked. Overwrite?", false)
		if err != nil {
			return nil, err
		}
		if !overwrite {
			return nil, kerrors.ErrAlreadyLinked
		}
	}

	result := &LinkResult{}
	if err := chooseProject(ctx, s, opts, result); err != nil {
		return nil, err
	}

	env, err := chooseEnv(s, opts.Env, "Select the default environment for this folder:")
	if err != nil {
		return nil, err
	}
	result.Env = env

	if err := store.Save(link.Descriptor{ProjectID: result.ProjectID, Env: env.String()}); err != nil {
		return nil, err
	}
	s.record(audit.Entry{Operation: audit.OpLink, ProjectID: result.ProjectID, Env: env.String()})

	if !result.Created {
		pull, err := shouldPull(s, opts.Pull, env)
		if err != nil {
			return nil, err
		}
		if pull {
			pulled, err := s.engine().Pull(ctx, secrets.PullOptions{})
			if err != nil {
				result.PullErr = err
			} else {
				result.Pulled = pulled
				s.record(audit.Entry{Operation: audit.OpPull, ProjectID: pulled.ProjectID, Env: pulled.Env.String(), Count: len(pulled.Secrets)})
			}
		}
	}

	ignored, hasGitignore := utils.EnvFileIgnored(s.Fs, s.Dir)
	result.EnvNotIgnored = hasGitignore && !ignored

	return result, nil
}

func chooseProject(ctx context.Context, s *Session, opts LinkOptions, result *LinkResult) error {
	if opts.ProjectID != "" {
		result.ProjectID = opts.ProjectID
		return nil
	}

	name := opts.NewProject
	if name == "" {
		projects, err := s.Service.ListProjects(ctx)
		if err != nil {
			return fmt.Errorf("fetching projects: %w", err)
		}

		options := []prompt.Option{{Label: "+ Create New Project", Value: createNewProject}}
		for _, p := range projects {
			options = append(options, prompt.Option{Label: p.Name, Value: p.ID})
		}
		selected, err := s.Prompt.Select("Select a project to link (or create new):", options)
		if err != nil {
			return err
		}
		if selected != createNewProject {
			result.ProjectID = selected
			for _, p := range projects {
				if p.ID == selected {
					result.ProjectName = p.Name
				}
			}
			return nil
		}

		name, err = s.Prompt.Input("Enter name for the new project:", "", validateName)
		if err != nil {
			return err
		}
	}

	if err := validateName(name); err != nil {
		return err
	}
	created, err := s.Service.CreateProject(ctx, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	result.ProjectID = created.ID
	result.ProjectName = created.Name
	result.Created = true
	return nil
}

func chooseEnv(s *Session, flag, title string) (environment.Tier, error) {
	if flag != "" {
		return environment.Parse(flag)
	}
	options := make([]prompt.Option, len(environment.Allowed))
	for i, t := range environment.Allowed {
		options[i] = prompt.Option{Label: t.String(), Value: t.String()}
	}
	selected, err := s.Prompt.Select(title, options)
	if errors.Is(err, kerrors.ErrNotInteractive) {
		return environment.Default, nil
	}
	if err != nil {
		return "", err
	}
	return environment.Parse(selected)
}

func shouldPull(s *Session, decided *bool, env environment.Tier) (bool, error) {
	if decided != nil {
		return *decided, nil
	}
	return s.Prompt.Confirm(fmt.Sprintf("Would you like to pull secrets from %s to .env now?", env), true)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return kerrors.ErrEmptyName
	}
	return nil
}
