package secrets

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/envdock/edk/internal/dotenv"
	"github.com/envdock/edk/internal/environment"
	"github.com/envdock/edk/internal/link"
	"github.com/envdock/edk/internal/remote"
)

// Remote is the subset of the secrets service the engine depends on.
type Remote interface {
	FetchSecrets(ctx context.Context, projectID string, env environment.Tier) (dotenv.SecretMap, error)
	ReplaceSecrets(ctx context.Context, projectID string, env environment.Tier, secrets dotenv.SecretMap) error
	FetchVersionHistory(ctx context.Context, projectID string, env environment.Tier) (*remote.VersionHistory, error)
	Rollback(ctx context.Context, projectID string, env environment.Tier, version int) (dotenv.SecretMap, error)
}

// State is the terminal state of a sync operation that did not fail.
type State int

const (
	// Completed means the remote call succeeded and local state was updated.
	Completed State = iota
	// Aborted means the user declined the confirmation; nothing was sent.
	Aborted
)

func (s State) String() string {
	if s == Aborted {
		return "aborted"
	}
	return "completed"
}

// Engine runs sync operations for a single working directory.
type Engine struct {
	fs     afero.Fs
	links  *link.Store
	remote Remote
}

// NewEngine returns an Engine for the directory dir.
func NewEngine(fs afero.Fs, dir string, r Remote) *Engine {
	return &Engine{
		fs:     fs,
		links:  link.NewStore(fs, dir),
		remote: r,
	}
}

// Links exposes the engine's link store.
func (e *Engine) Links() *link.Store {
	return e.links
}

// target is the resolved (project, tier) pair every operation works against.
type target struct {
	projectID string
	env       environment.Tier
}

// resolve loads the descriptor and resolves the tier. It never touches the network.
func (e *Engine) resolve(envFlag string) (target, error) {
	desc, err := e.links.Load()
	if err != nil {
		return target{}, err
	}
	env, err := environment.Resolve(envFlag, desc.Env)
	if err != nil {
		return target{}, err
	}
	return target{projectID: desc.ProjectID, env: env}, nil
}

// Resolve reports the project and tier an operation with envFlag would target.
func (e *Engine) Resolve(envFlag string) (string, environment.Tier, error) {
	t, err := e.resolve(envFlag)
	return t.projectID, t.env, err
}

func (e *Engine) localPath(file string) string {
	if file == "" {
		file = dotenv.DefaultFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(e.links.Dir(), file)
}
