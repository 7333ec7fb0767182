package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envdock/edk/internal/environment"
	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/remote"
)

func TestLinkExistingProjectAndPull(t *testing.T) {
	f := newFixture(t)
	f.api.update(func(api *fakeAPI) {
		api.projects = []remote.Project{{ID: "p1", Name: "api"}, {ID: "p2", Name: "web"}}
		api.secrets["staging"] = map[string]string{"DB": "pg"}
	})
	f.prompt.selects = []string{"p1", "staging"}
	f.prompt.confirms = []bool{true}

	result, err := Link(context.Background(), f.session, LinkOptions{})
	require.NoError(t, err)

	assert.Equal(t, "p1", result.ProjectID)
	assert.Equal(t, "api", result.ProjectName)
	assert.Equal(t, environment.Staging, result.Env)
	assert.False(t, result.Created)
	require.NotNil(t, result.Pulled)
	assert.NoError(t, result.PullErr)

	assert.JSONEq(t, `{"projectId":"p1","env":"staging"}`, f.read(t, ".envdock.json"))
	assert.Equal(t, "DB=pg", f.read(t, ".env"))
	assert.Equal(t, []string{"link", "pull"}, f.auditOps(t))
}

func TestLinkCreatesProjectWithoutPull(t *testing.T) {
	f := newFixture(t)
	f.prompt.selects = []string{createNewProject, "dev"}
	f.prompt.inputs = []string{"payments"}

	result, err := Link(context.Background(), f.session, LinkOptions{})
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, "payments", result.ProjectName)
	assert.Nil(t, result.Pulled)
	assert.True(t, f.api.called("POST /projects"))
	assert.False(t, f.api.called("GET /cli/"+result.ProjectID))
}

func TestLinkRejectsBlankProjectName(t *testing.T) {
	f := newFixture(t)

	_, err := Link(context.Background(), f.session, LinkOptions{NewProject: "   ", Env: "dev"})
	assert.ErrorIs(t, err, kerrors.ErrEmptyName)
	assert.False(t, f.api.called("POST /projects"))
}

func TestLinkOverwriteDeclined(t *testing.T) {
	f := newFixture(t)
	f.link(t, "prod")
	f.prompt.confirms = []bool{false}

	_, err := Link(context.Background(), f.session, LinkOptions{ProjectID: "p9", Env: "dev"})
	assert.ErrorIs(t, err, kerrors.ErrAlreadyLinked)
	assert.JSONEq(t, `{"projectId":"p1","env":"prod"}`, f.read(t, ".envdock.json"))
}

func TestLinkWithFlagsSkipsPrompts(t *testing.T) {
	f := newFixture(t)
	f.link(t, "prod")
	f.write(t, ".gitignore", "node_modules\n")
	noPull := false

	result, err := Link(context.Background(), f.session, LinkOptions{Force: true, ProjectID: "p9", Env: "STAGING", Pull: &noPull})
	require.NoError(t, err)

	assert.Equal(t, environment.Staging, result.Env)
	assert.True(t, result.EnvNotIgnored)
	assert.Empty(t, f.prompt.titles)
	assert.JSONEq(t, `{"projectId":"p9","env":"staging"}`, f.read(t, ".envdock.json"))
}

func TestLinkPullFailureKeepsLink(t *testing.T) {
	f := newFixture(t)
	f.api.update(func(api *fakeAPI) { api.status["GET /cli/p1"] = 403 })
	pull := true

	result, err := Link(context.Background(), f.session, LinkOptions{ProjectID: "p1", Env: "dev", Pull: &pull})
	require.NoError(t, err)
	assert.True(t, kerrors.IsAccessDenied(result.PullErr))
	assert.True(t, f.session.links().IsLinked())
}

func TestLinkInvalidEnvFlag(t *testing.T) {
	f := newFixture(t)

	_, err := Link(context.Background(), f.session, LinkOptions{ProjectID: "p1", Env: "qa"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidEnvironment)
	assert.False(t, f.session.links().IsLinked())
}
