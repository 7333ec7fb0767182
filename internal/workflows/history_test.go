package workflows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envdock/edk/internal/audit"
	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/remote"
)

func TestHistoryRemote(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.api.update(func(api *fakeAPI) {
		api.logs = []remote.AuditLog{
			{Action: "PUSH", UserEmail: "ana@example.com", Details: "dev, 3 secrets", CreatedAt: at},
			{Action: "ROLLBACK", UserEmail: "bo@example.com", Details: "dev to v2", CreatedAt: at.Add(time.Hour)},
		}
	})

	result, err := History(context.Background(), f.session, HistoryOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "ROLLBACK", result.Events[0].Action)
	assert.Equal(t, "bo@example.com", result.Events[0].User)
	assert.False(t, result.Local)
}

func TestHistoryRemoteRequiresLink(t *testing.T) {
	f := newFixture(t)

	_, err := History(context.Background(), f.session, HistoryOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNotLinked)
}

func TestHistoryLocalFiltersByProject(t *testing.T) {
	f := newFixture(t)
	f.link(t, "dev")
	f.session.Audit.Log(audit.Entry{Operation: audit.OpPull, ProjectID: "p1", Env: "dev", Count: 2})
	f.session.Audit.Log(audit.Entry{Operation: audit.OpPush, ProjectID: "other", Env: "prod", Count: 5})
	f.session.Audit.Log(audit.Entry{Operation: audit.OpRollback, ProjectID: "p1", Env: "dev", Version: 4})

	result, err := History(context.Background(), f.session, HistoryOptions{Local: true})
	require.NoError(t, err)

	assert.True(t, result.Local)
	assert.Equal(t, "p1", result.ProjectID)
	require.Len(t, result.Events, 2)
	assert.Equal(t, "2 secrets, dev", result.Events[0].Details)
	assert.Equal(t, "restored v4, dev", result.Events[1].Details)
	assert.Empty(t, f.api.calls())
}

func TestHistoryLocalWithoutLink(t *testing.T) {
	f := newFixture(t)
	f.session.Audit.Log(audit.Entry{Operation: audit.OpPull, ProjectID: "p1"})
	f.session.Audit.Log(audit.Entry{Operation: audit.OpPull, ProjectID: "p2"})

	result, err := History(context.Background(), f.session, HistoryOptions{Local: true})
	require.NoError(t, err)
	assert.Empty(t, result.ProjectID)
	assert.Len(t, result.Events, 2)
}
