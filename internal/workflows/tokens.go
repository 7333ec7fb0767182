package workflows

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/remote"
)

// TokensListResult contains the CI tokens of the linked project.
type TokensListResult struct {
	ProjectID string
	Tokens    []remote.Token
}

// TokensList lists the CI tokens of the linked project.
func TokensList(ctx context.Context, s *Session) (*TokensListResult, error) {
	projectID, err := s.project()
	if err != nil {
		return nil, err
	}
	tokens, err := s.Service.ListTokens(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching tokens: %w", err)
	}
	return &TokensListResult{ProjectID: projectID, Tokens: tokens}, nil
}

// TokensCreateOptions configures the token creation workflow.
type TokensCreateOptions struct {
	// Name is asked for when empty.
	Name string
}

// TokensCreateResult holds a newly issued token. Secret is shown once and never stored.
type TokensCreateResult struct {
	ProjectID string
	Name      string
	Secret    string
}

// TokensCreate issues a new CI token for the linked project.
//
// Returns ErrEmptyName if the name is blank.
func TokensCreate(ctx context.Context, s *Session, opts TokensCreateOptions) (*TokensCreateResult, error) {
	projectID, err := s.project()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name, err = s.Prompt.Input("Enter a name for this token (e.g., ci-pipeline):", "", validateName)
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	secret, err := s.Service.CreateToken(ctx, projectID, name)
	if err != nil {
		return nil, fmt.Errorf("creating token: %w", err)
	}
	return &TokensCreateResult{ProjectID: projectID, Name: name, Secret: secret}, nil
}

// TokensRevokeOptions configures the token revocation workflow.
type TokensRevokeOptions struct {
	// Name selects the token. It is asked for when empty.
	Name string
}

// TokensRevokeResult describes a revocation.
type TokensRevokeResult struct {
	ProjectID string
	Name      string
	Cancelled bool
}

// TokensRevoke deletes a CI token after confirmation.
//
// Returns ErrTokenNotFound if no token has the given name or none exist.
func TokensRevoke(ctx context.Context, s *Session, opts TokensRevokeOptions) (*TokensRevokeResult, error) {
	projectID, err := s.project()
	if err != nil {
		return nil, err
	}
	tokens, err := s.Service.ListTokens(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens to revoke: %w", kerrors.ErrTokenNotFound)
	}

	var target remote.Token
	if opts.Name != "" {
		found := false
		for _, t := range tokens {
			if t.Name == opts.Name {
				target, found = t, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%q: %w", opts.Name, kerrors.ErrTokenNotFound)
		}
	} else {
		options := make([]prompt.Option, len(tokens))
		for i, t := range tokens {
			options[i] = prompt.Option{
				Label: fmt.Sprintf("%s (%s...) - %s", t.Name, t.TokenPrefix, t.CreatedAt.Local().Format("2006-01-02")),
				Value: t.ID,
			}
		}
		selected, err := s.Prompt.Select("Select the token to revoke:", options)
		if err != nil {
			return nil, err
		}
		for _, t := range tokens {
			if t.ID == selected {
				target = t
			}
		}
	}

	result := &TokensRevokeResult{ProjectID: projectID, Name: target.Name}
	ok, err := s.Prompt.Confirm(fmt.Sprintf("Are you sure you want to revoke '%s'? This will break any apps using it.", target.Name), false)
	if err != nil {
		return nil, err
	}
	if !ok {
		result.Cancelled = true
		return result, nil
	}

	if err := s.Service.RevokeToken(ctx, projectID, target.ID); err != nil {
		return nil, fmt.Errorf("revoking token: %w", err)
	}
	return result, nil
}
