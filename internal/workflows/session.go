package workflows

import (
	"context"

	"github.com/spf13/afero"

	"github.com/envdock/edk/internal/audit"
	"github.com/envdock/edk/internal/configs"
	"github.com/envdock/edk/internal/link"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/remote"
	"github.com/envdock/edk/internal/secrets"
)

// Service is everything the workflows ask of the secrets service.
// *remote.Client implements it.
type Service interface {
	secrets.Remote

	Login(ctx context.Context, email, password string) (*remote.LoginResponse, error)
	Me(ctx context.Context) (*remote.User, error)
	UpdateProfile(ctx context.Context, name string) (*remote.User, error)
	ChangePassword(ctx context.Context, current, next string) error

	ListProjects(ctx context.Context) ([]remote.Project, error)
	CreateProject(ctx context.Context, name string) (*remote.Project, error)
	GetProject(ctx context.Context, projectID string) (*remote.Project, error)
	AuditLogs(ctx context.Context, projectID string) ([]remote.AuditLog, error)

	ListMembers(ctx context.Context, projectID string) ([]remote.Member, error)
	InviteMember(ctx context.Context, projectID, email, role string) error
	UpdateMemberRole(ctx context.Context, projectID, email, role string) error
	RemoveMember(ctx context.Context, projectID, userID string) error

	ListTokens(ctx context.Context, projectID string) ([]remote.Token, error)
	CreateToken(ctx context.Context, projectID, name string) (string, error)
	RevokeToken(ctx context.Context, projectID, tokenID string) error
}

var _ Service = (*remote.Client)(nil)

// Session carries the collaborators of one CLI invocation.
type Session struct {
	// Fs is the filesystem holding the working directory.
	Fs afero.Fs

	// Dir is the working directory the link descriptor lives in.
	Dir string

	// Config is the global user config.
	Config configs.Store

	// Service is the remote secrets service.
	Service Service

	// Prompt asks the user for missing input and confirmations.
	Prompt prompt.Prompter

	// Audit is the local audit trail. Nil disables recording.
	Audit *audit.Trail
}

func (s *Session) links() *link.Store {
	return link.NewStore(s.Fs, s.Dir)
}

func (s *Session) engine() *secrets.Engine {
	return secrets.NewEngine(s.Fs, s.Dir, s.Service)
}

// project loads the descriptor and returns the linked project id.
func (s *Session) project() (string, error) {
	desc, err := s.links().Load()
	if err != nil {
		return "", err
	}
	return desc.ProjectID, nil
}

func (s *Session) record(entry audit.Entry) {
	if s.Audit == nil {
		return
	}
	if entry.User == "" && s.Config != nil {
		entry.User, _ = s.Config.Get(configs.KeyUserEmail)
	}
	entry.Dir = s.Dir
	s.Audit.Log(entry)
}

// LoggedIn reports whether a session token is stored.
func (s *Session) LoggedIn() bool {
	if s.Config == nil {
		return false
	}
	token, err := s.Config.Get(configs.KeyToken)
	return err == nil && token != ""
}
