package workflows

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/remote"
	"github.com/envdock/edk/internal/utils"
)

// Roles lists the project roles in ascending privilege.
var Roles = []string{"viewer", "editor", "admin"}

// TeamListResult contains the members of the linked project.
type TeamListResult struct {
	ProjectID string
	Members   []remote.Member
}

// TeamList lists the members of the linked project.
func TeamList(ctx context.Context, s *Session) (*TeamListResult, error) {
	projectID, err := s.project()
	if err != nil {
		return nil, err
	}
	members, err := s.Service.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching team members: %w", err)
	}
	return &TeamListResult{ProjectID: projectID, Members: members}, nil
}

// TeamAddOptions configures the team add workflow.
type TeamAddOptions struct {
	Email string
	// Role is asked for when empty.
	Role string
}

// TeamChangeResult describes a membership change.
type TeamChangeResult struct {
	ProjectID string
	Email     string
	Role      string
	Cancelled bool
}

// TeamAdd invites a user to the linked project.
//
// Returns ErrInvalidEmail if the email is malformed.
// Returns ErrInvalidRole if the role is not viewer, editor or admin.
func TeamAdd(ctx context.Context, s *Session, opts TeamAddOptions) (*TeamChangeResult, error) {
	projectID, err := s.project()
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(opts.Email)
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%q: %w", email, kerrors.ErrInvalidEmail)
	}
	role, err := chooseRole(s, opts.Role, "Select role:")
	if err != nil {
		return nil, err
	}

	if err := s.Service.InviteMember(ctx, projectID, email, role); err != nil {
		return nil, fmt.Errorf("adding %s: %w", email, err)
	}
	return &TeamChangeResult{ProjectID: projectID, Email: email, Role: role}, nil
}

// TeamUpdateOptions configures the team update workflow.
type TeamUpdateOptions struct {
	// Email is asked for when empty.
	Email string
	// Role is asked for when empty.
	Role string
}

// TeamUpdate changes the role of a member other than the current user.
//
// Returns ErrSelfModification if the target is the current user.
// Returns ErrMemberNotFound if the target is not a member.
func TeamUpdate(ctx context.Context, s *Session, opts TeamUpdateOptions) (*TeamChangeResult, error) {
	projectID, err := s.project()
	if err != nil {
		return nil, err
	}
	members, me, err := fetchTeam(ctx, s, projectID)
	if err != nil {
		return nil, err
	}

	target, err := chooseMember(s, members, me, opts.Email, "Select a member to update:")
	if err != nil {
		return nil, err
	}
	role, err := chooseRole(s, opts.Role, fmt.Sprintf("Select new role for %s:", target.Email))
	if err != nil {
		return nil, err
	}

	if err := s.Service.UpdateMemberRole(ctx, projectID, target.Email, role); err != nil {
		return nil, fmt.Errorf("updating role for %s: %w", target.Email, err)
	}
	return &TeamChangeResult{ProjectID: projectID, Email: target.Email, Role: role}, nil
}

// TeamRemoveOptions configures the team remove workflow.
type TeamRemoveOptions struct {
	// Email is asked for when empty.
	Email string
}

// TeamRemove removes a member other than the current user, after confirmation.
//
// Returns ErrSelfModification if the target is the current user.
// Returns ErrMemberNotFound if the target is not a member.
func TeamRemove(ctx context.Context, s *Session, opts TeamRemoveOptions) (*TeamChangeResult, error) {
	projectID, err := s.project()
	if err != nil {
		return nil, err
	}
	members, me, err := fetchTeam(ctx, s, projectID)
	if err != nil {
		return nil, err
	}

	target, err := chooseMember(s, members, me, opts.Email, "Select a member to remove:")
	if err != nil {
		return nil, err
	}

	result := &TeamChangeResult{ProjectID: projectID, Email: target.Email, Role: target.Role}
	ok, err := s.Prompt.Confirm(fmt.Sprintf("Are you sure you want to remove %s?", target.Email), false)
	if err != nil {
		return nil, err
	}
	if !ok {
		result.Cancelled = true
		return result, nil
	}

	if err := s.Service.RemoveMember(ctx, projectID, target.UserID); err != nil {
		return nil, fmt.Errorf("removing %s: %w", target.Email, err)
	}
	return result, nil
}

// fetchTeam reads the member list and the current identity concurrently.
func fetchTeam(ctx context.Context, s *Session, projectID string) ([]remote.Member, *remote.User, error) {
	var (
		members []remote.Member
		me      *remote.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.Service.ListMembers(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		me, err = s.Service.Me(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("fetching team details: %w", err)
	}
	if len(members) == 0 {
		return nil, nil, fmt.Errorf("project %s: %w", projectID, kerrors.ErrMemberNotFound)
	}
	return members, me, nil
}

func chooseMember(s *Session, members []remote.Member, me *remote.User, email, title string) (remote.Member, error) {
	email = strings.TrimSpace(email)
	if email != "" {
		if strings.EqualFold(email, me.Email) {
			return remote.Member{}, kerrors.ErrSelfModification
		}
		for _, m := range members {
			if strings.EqualFold(m.Email, email) {
				return m, nil
			}
		}
		return remote.Member{}, fmt.Errorf("%s: %w", email, kerrors.ErrMemberNotFound)
	}

	var others []remote.Member
	var options []prompt.Option
	for _, m := range members {
		if strings.EqualFold(m.Email, me.Email) {
			continue
		}
		others = append(others, m)
		options = append(options, prompt.Option{Label: memberLabel(m), Value: m.Email})
	}
	if len(others) == 0 {
		return remote.Member{}, fmt.Errorf("no other members: %w", kerrors.ErrMemberNotFound)
	}

	selected, err := s.Prompt.Select(title, options)
	if err != nil {
		return remote.Member{}, err
	}
	for _, m := range others {
		if m.Email == selected {
			return m, nil
		}
	}
	return remote.Member{}, fmt.Errorf("%s: %w", selected, kerrors.ErrMemberNotFound)
}

func chooseRole(s *Session, role, title string) (string, error) {
	if role != "" {
		role = strings.ToLower(strings.TrimSpace(role))
		for _, r := range Roles {
			if r == role {
				return role, nil
			}
		}
		return "", fmt.Errorf("%q (must be one of %s): %w", role, strings.Join(Roles, ", "), kerrors.ErrInvalidRole)
	}

	options := make([]prompt.Option, len(Roles))
	for i, r := range Roles {
		options[i] = prompt.Option{Label: r, Value: r}
	}
	return s.Prompt.Select(title, options)
}

func memberLabel(m remote.Member) string {
	name := m.Name
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("%s (%s) - %s", name, m.Email, m.Role)
}
