package workflows

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skratchdot/open-golang/open"

	"github.com/envdock/edk/internal/configs"
	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/utils"
)

const (
	// DefaultCallbackAddr is where the browser login listens for the redirect.
	DefaultCallbackAddr = "localhost:4200"

	// DefaultLoginURL is the web page that authenticates and redirects back.
	DefaultLoginURL = "https://envdock.cloud/cli"

	defaultUserName = "User"
)

// LoginOptions configures the credential login workflow.
type LoginOptions struct {
	// Email is the account email. Required.
	Email string

	// Password is used when non-empty; otherwise the session prompts for it.
	Password string
}

// LoginResult contains the identity stored by a successful login.
type LoginResult struct {
	Name  string
	Email string
}

// Login authenticates with email and password and stores the session.
//
// Returns ErrAlreadyLoggedIn if a token is already stored.
// Returns ErrInvalidEmail if the email is malformed.
func Login(ctx context.Context, s *Session, opts LoginOptions) (*LoginResult, error) {
	if s.LoggedIn() {
		return nil, kerrors.ErrAlreadyLoggedIn
	}

	email := strings.TrimSpace(opts.Email)
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%q: %w", email, kerrors.ErrInvalidEmail)
	}

	password := opts.Password
	if password == "" {
		var err error
		password, err = s.Prompt.Password("Password:")
		if err != nil {
			return nil, err
		}
	}

	resp, err := s.Service.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	name := resp.Name
	if name == "" {
		name = defaultUserName
	}
	user := configs.User{Name: name, Email: email}
	if err := configs.SaveSession(s.Config, resp.Token, user); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	return &LoginResult{Name: name, Email: email}, nil
}

// BrowserLoginOptions configures the browser login workflow.
type BrowserLoginOptions struct {
	// Addr is the local callback listen address. Defaults to DefaultCallbackAddr.
	Addr string

	// LoginURL is the web login page. Defaults to DefaultLoginURL.
	LoginURL string

	// Open launches the browser. Defaults to the system opener.
	Open func(target string) error

	// Waiting is called with the login URL once the callback listener is up,
	// so the caller can print it for manual use.
	Waiting func(target string)
}

type callbackResult struct {
	token string
	user  configs.User
}

// BrowserLogin opens the web login page and waits for it to redirect to a
// local callback carrying token, name and email query parameters.
//
// The wait ends when the callback arrives or ctx is done.
//
// Returns ErrAlreadyLoggedIn if a token is already stored.
func BrowserLogin(ctx context.Context, s *Session, opts BrowserLoginOptions) (*LoginResult, error) {
	if s.LoggedIn() {
		return nil, kerrors.ErrAlreadyLoggedIn
	}

	addr := opts.Addr
	if addr == "" {
		addr = DefaultCallbackAddr
	}
	loginURL := opts.LoginURL
	if loginURL == "" {
		loginURL = DefaultLoginURL
	}
	openBrowser := opts.Open
	if openBrowser == nil {
		openBrowser = open.Run
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting login callback listener on %s: %w", addr, err)
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		token := q.Get("token")
		if token == "" {
			http.Error(w, "Missing token", http.StatusBadRequest)
			return
		}
		user := configs.User{Name: q.Get("name"), Email: q.Get("email")}
		if user.Name == "" {
			user.Name = defaultUserName
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, callbackPage, html.EscapeString(user.Name))

		select {
		case results <- callbackResult{token: token, user: user}:
		default:
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	callbackURL := fmt.Sprintf("http://localhost:%d/callback", port)
	target := loginURL + "?redirect_uri=" + url.QueryEscape(callbackURL)

	if opts.Waiting != nil {
		opts.Waiting(target)
	}
	// A failed launch is not fatal: the URL was handed to Waiting for manual use.
	_ = openBrowser(target)

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, kerrors.ErrCancelled
		}
		return nil, fmt.Errorf("waiting for browser login: %w", ctx.Err())
	}

	if err := configs.SaveSession(s.Config, result.token, result.user); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return &LoginResult{Name: result.user.Name, Email: result.user.Email}, nil
}

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>envdock | Authentication Successful</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 20vh;">
  <h1>Authentication Success</h1>
  <p>Logged in as %s. You can close this tab and return to your terminal.</p>
  <script>setTimeout(function() { window.close(); }, 2000);</script>
</body>
</html>
`

// LogoutResult contains the identity that was logged out.
type LogoutResult struct {
	Email string
}

// Logout removes the stored token and identity.
//
// Returns ErrNotLoggedIn if no token is stored.
func Logout(ctx context.Context, s *Session) (*LogoutResult, error) {
	if !s.LoggedIn() {
		return nil, kerrors.ErrNotLoggedIn
	}

	email, _ := s.Config.Get(configs.KeyUserEmail)
	for _, key := range []configs.Key{configs.KeyToken, configs.KeyUserName, configs.KeyUserEmail} {
		if err := s.Config.Delete(key); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", key, err)
		}
	}
	return &LogoutResult{Email: email}, nil
}

// WhoamiOptions configures the whoami workflow.
type WhoamiOptions struct {
	// Verify asks the service who the token belongs to and refreshes the stored name.
	Verify bool
}

// WhoamiResult contains the current identity.
type WhoamiResult struct {
	Name     string
	Email    string
	Verified bool
}

// Whoami reports the logged-in identity.
//
// Returns ErrNotLoggedIn if no token or identity is stored.
func Whoami(ctx context.Context, s *Session, opts WhoamiOptions) (*WhoamiResult, error) {
	if !s.LoggedIn() {
		return nil, kerrors.ErrNotLoggedIn
	}
	user, err := configs.LoadUser(s.Config)
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}
	if user.Name == "" && user.Email == "" {
		return nil, kerrors.ErrNotLoggedIn
	}

	result := &WhoamiResult{Name: user.Name, Email: user.Email}
	if !opts.Verify {
		return result, nil
	}

	me, err := s.Service.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("verifying session: %w", err)
	}
	result.Verified = true
	if me.Name != "" && me.Name != user.Name {
		result.Name = me.Name
		if err := s.Config.Set(configs.KeyUserName, me.Name); err != nil {
			return nil, fmt.Errorf("updating stored name: %w", err)
		}
	}
	if me.Email != "" {
		result.Email = me.Email
	}
	return result, nil
}
