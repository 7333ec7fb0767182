package workflows

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envdock/edk/internal/environment"
	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/remote"
	"github.com/envdock/edk/internal/secrets"
)

func TestPullWritesEnvAndAudits(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.write(t, ".env", "OLD=1")
	f.api.update(func(api *fakeAPI) { api.secrets["dev"] = map[string]string{"B": "2", "A": "1"} })

	result, err := Pull(context.Background(), f.session, PullOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Secrets, 2)
	assert.Equal(t, "A=1\nB=2", f.read(t, ".env"))
	assert.Equal(t, []string{"pull"}, f.auditOps(t))
}

func TestPullNotLinked(t *testing.T) {
	f := newFixture(t)

	_, err := Pull(context.Background(), f.session, PullOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNotLinked)
	assert.Empty(t, f.api.calls())
}

func TestPushConfirmed(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.write(t, ".env", "API_KEY = \"abc#123\" # comment\nEMPTY=\nPORT=3000")
	f.prompt.confirms = []bool{true}

	result, err := Push(context.Background(), f.session, PushOptions{Env: "Prod"})
	require.NoError(t, err)

	assert.Equal(t, secrets.Completed, result.State)
	assert.Equal(t, environment.Prod, result.Env)
	assert.Contains(t, f.prompt.titles[0], "PROD")
	assert.Contains(t, f.prompt.titles[0], ".env")
	f.api.update(func(api *fakeAPI) {
		assert.Equal(t, map[string]string{"API_KEY": "abc#123", "EMPTY": "", "PORT": "3000"}, api.secrets["prod"])
	})
	assert.Equal(t, []string{"push"}, f.auditOps(t))
}

func TestPushDeclined(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.write(t, ".env", "A=1")
	f.prompt.confirms = []bool{false}

	result, err := Push(context.Background(), f.session, PushOptions{})
	require.NoError(t, err)
	assert.Equal(t, secrets.Aborted, result.State)
	assert.False(t, f.api.called("POST /cli/push/p1"))
	assert.Empty(t, f.auditOps(t))
}

func TestPushEmptyFile(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.write(t, ".env", "# only comments\n")

	_, err := Push(context.Background(), f.session, PushOptions{})
	assert.ErrorIs(t, err, kerrors.ErrEmptySecretSet)
	assert.Empty(t, f.prompt.titles)
	assert.Empty(t, f.api.calls())
}

func TestPushAccessDenied(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.write(t, ".env", "A=1")
	f.prompt.confirms = []bool{true}
	f.api.update(func(api *fakeAPI) { api.status["POST /cli/push/p1"] = 403 })

	_, err := Push(context.Background(), f.session, PushOptions{})
	assert.True(t, kerrors.IsAccessDenied(err))
}

func seedHistory(f *fixture) {
	f.api.update(func(api *fakeAPI) {
		api.active["dev"] = 3
		api.history["dev"] = []remote.Version{
			{Version: 3, CreatedBy: &remote.Person{Name: "Ana"}},
			{Version: 2, CreatedBy: &remote.Person{Name: "Bo"}},
			{Version: 1},
		}
		api.restore[2] = map[string]string{"A": "two"}
	})
}

func TestRollbackInteractive(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.write(t, ".env", "A=three")
	seedHistory(f)
	f.prompt.selects = []string{"2"}
	f.prompt.confirms = []bool{true}

	result, err := Rollback(context.Background(), f.session, RollbackOptions{})
	require.NoError(t, err)

	assert.Equal(t, secrets.Completed, result.State)
	assert.Equal(t, 2, result.Version)
	assert.Equal(t, "A=two", f.read(t, ".env"))
	assert.Equal(t, []string{"rollback"}, f.auditOps(t))

	versionCalls := 0
	for _, c := range f.api.calls() {
		if c == "GET /cli/p1/versions" {
			versionCalls++
		}
	}
	assert.Equal(t, 1, versionCalls, "history is fetched once")
}

func TestRollbackToActiveVersion(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.write(t, ".env", "A=three")
	seedHistory(f)

	_, err := Rollback(context.Background(), f.session, RollbackOptions{Version: 3})
	assert.ErrorIs(t, err, kerrors.ErrNoOpRollback)
	assert.False(t, f.api.called("POST /cli/p1/rollback"))
	assert.Equal(t, "A=three", f.read(t, ".env"))
}

func TestRollbackNothingToRestore(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.api.update(func(api *fakeAPI) {
		api.active["dev"] = 1
		api.history["dev"] = []remote.Version{{Version: 1}}
	})

	_, err := Rollback(context.Background(), f.session, RollbackOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoVersions)
}

func TestRollbackDeclined(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.write(t, ".env", "A=three")
	seedHistory(f)
	f.prompt.confirms = []bool{false}

	result, err := Rollback(context.Background(), f.session, RollbackOptions{Version: 2})
	require.NoError(t, err)
	assert.Equal(t, secrets.Aborted, result.State)
	assert.False(t, f.api.called("POST /cli/p1/rollback"))
}

func TestVersionLabel(t *testing.T) {
	label := VersionLabel(remote.Version{Version: 4, CreatedBy: &remote.Person{Name: "Ana"}})
	assert.True(t, strings.HasPrefix(label, "v4 - "))
	assert.True(t, strings.HasSuffix(label, "(by Ana)"))

	assert.True(t, strings.HasSuffix(VersionLabel(remote.Version{Version: 1}), "(by Unknown)"))
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	f.link(t, "staging")
	f.api.update(func(api *fakeAPI) {
		api.projects = []remote.Project{{ID: "p1", Name: "api"}}
		api.active["staging"] = 7
	})

	result, err := Status(context.Background(), f.session, StatusOptions{})
	require.NoError(t, err)
	assert.Equal(t, "api", result.ProjectName)
	assert.Equal(t, environment.Staging, result.Env)
	assert.Equal(t, 7, result.ActiveVersion)
}
