package workflows

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envdock/edk/internal/configs"
	kerrors "github.com/envdock/edk/internal/errors"
)

func logout(t *testing.T, f *fixture) {
	t.Helper()
	require.NoError(t, f.config.Clear())
}

func TestLoginRefusesWhenAlreadyLoggedIn(t *testing.T) {
	f := newFixture(t)

	_, err := Login(context.Background(), f.session, LoginOptions{Email: "ana@example.com", Password: "hunter2"})
	assert.ErrorIs(t, err, kerrors.ErrAlreadyLoggedIn)
	assert.Empty(t, f.api.calls())
}

func TestLoginRejectsMalformedEmail(t *testing.T) {
	f := newFixture(t)
	logout(t, f)

	_, err := Login(context.Background(), f.session, LoginOptions{Email: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidEmail)
	assert.Empty(t, f.api.calls())
}

func TestLoginPromptsForPasswordAndStoresSession(t *testing.T) {
	f := newFixture(t)
	logout(t, f)
	f.prompt.passwords = []string{"hunter2"}

	result, err := Login(context.Background(), f.session, LoginOptions{Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", result.Name)

	token, _ := f.config.Get(configs.KeyToken)
	assert.Equal(t, "tok-new", token)
	user, _ := configs.LoadUser(f.config)
	assert.Equal(t, configs.User{Name: "Ana", Email: "ana@example.com"}, user)
}

func TestLoginWrongPasswordStoresNothing(t *testing.T) {
	f := newFixture(t)
	logout(t, f)

	_, err := Login(context.Background(), f.session, LoginOptions{Email: "ana@example.com", Password: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.False(t, f.session.LoggedIn())
}

func TestBrowserLogin(t *testing.T) {
	f := newFixture(t)
	logout(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var opened string
	result, err := BrowserLogin(ctx, f.session, BrowserLoginOptions{
		Addr:     "127.0.0.1:0",
		LoginURL: "https://envdock.test/cli",
		Waiting:  func(target string) { opened = target },
		Open: func(target string) error {
			u, err := url.Parse(target)
			if err != nil {
				return err
			}
			callback := u.Query().Get("redirect_uri")
			go func() {
				resp, err := http.Get(callback + "?token=tok-web&name=Bo&email=bo%40example.com")
				if err == nil {
					_, _ = io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
			}()
			return nil
		},
	})
	require.NoError(t, err)

	assert.Contains(t, opened, "https://envdock.test/cli?redirect_uri=http%3A%2F%2Flocalhost%3A")
	assert.Equal(t, "Bo", result.Name)
	token, _ := f.config.Get(configs.KeyToken)
	assert.Equal(t, "tok-web", token)
	email, _ := f.config.Get(configs.KeyUserEmail)
	assert.Equal(t, "bo@example.com", email)
}

func TestBrowserLoginCancelled(t *testing.T) {
	f := newFixture(t)
	logout(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := BrowserLogin(ctx, f.session, BrowserLoginOptions{
		Addr: "127.0.0.1:0",
		Open: func(string) error {
			cancel()
			return nil
		},
	})
	assert.ErrorIs(t, err, kerrors.ErrCancelled)
	assert.False(t, f.session.LoggedIn())
}

func TestLogout(t *testing.T) {
	f := newFixture(t)

	result, err := Logout(context.Background(), f.session)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", result.Email)
	assert.False(t, f.session.LoggedIn())

	_, err = Logout(context.Background(), f.session)
	assert.ErrorIs(t, err, kerrors.ErrNotLoggedIn)
}

func TestWhoami(t *testing.T) {
	f := newFixture(t)

	result, err := Whoami(context.Background(), f.session, WhoamiOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", result.Email)
	assert.False(t, result.Verified)
	assert.Empty(t, f.api.calls())

	f.api.update(func(api *fakeAPI) { api.me.Name = "Ana Maria" })
	result, err = Whoami(context.Background(), f.session, WhoamiOptions{Verify: true})
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, "Ana Maria", result.Name)
	name, _ := f.config.Get(configs.KeyUserName)
	assert.Equal(t, "Ana Maria", name)
}

func TestWhoamiLoggedOut(t *testing.T) {
	f := newFixture(t)
	logout(t, f)

	_, err := Whoami(context.Background(), f.session, WhoamiOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNotLoggedIn)
}
