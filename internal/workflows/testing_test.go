package workflows

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/envdock/edk/internal/audit"
	"github.com/envdock/edk/internal/configs"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/remote"
)

const testDir = "/work/app"

// fakeAPI is an in-memory secrets service served over httptest.
type fakeAPI struct {
	mu sync.Mutex

	projects []remote.Project
	secrets  map[string]map[string]string // env -> secrets
	active   map[string]int
	history  map[string][]remote.Version
	restore  map[int]map[string]string
	members  []remote.Member
	me       remote.User
	tokens   []remote.Token
	logs     []remote.AuditLog
	status   map[string]int // "METHOD /path" -> forced status

	requests []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		secrets: map[string]map[string]string{},
		active:  map[string]int{},
		history: map[string][]remote.Version{},
		restore: map[int]map[string]string{},
		status:  map[string]int{},
		me:      remote.User{ID: "u1", Name: "Ana", Email: "ana@example.com"},
	}
}

// update mutates the fake's state under its lock.
func (f *fakeAPI) update(fn func(api *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeAPI) called(route string) bool {
	for _, r := range f.calls() {
		if r == route {
			return true
		}
	}
	return false
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	route := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, route)
	if code, ok := f.status[route]; ok {
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": http.StatusText(code)})
		return
	}

	env := r.URL.Query().Get("env")
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	reply := func(v any) { _ = json.NewEncoder(w).Encode(v) }

	switch {
	case route == "POST /auth/login":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			reply(map[string]string{"message": "Invalid credentials"})
			return
		}
		reply(map[string]string{"token": "tok-new", "name": "Ana"})
	case route == "GET /auth/me":
		reply(f.me)
	case route == "PUT /auth/profile":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.me.Name = body["name"]
		reply(f.me)
	case route == "PUT /auth/password":
		reply(map[string]string{})
	case route == "GET /dashboard/stats":
		reply(map[string]any{"projects": f.projects})
	case route == "POST /projects":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		p := remote.Project{ID: fmt.Sprintf("new-%d", len(f.projects)+1), Name: body["name"]}
		f.projects = append(f.projects, p)
		reply(p)
	case len(parts) == 2 && parts[0] == "projects" && r.Method == http.MethodGet:
		for _, p := range f.projects {
			if p.ID == parts[1] {
				reply(p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	case len(parts) == 3 && parts[2] == "audit-logs":
		reply(f.logs)
	case len(parts) == 4 && parts[1] == "cli" && parts[3] == "members":
		if r.Method == http.MethodGet {
			reply(f.members)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		for i := range f.members {
			if f.members[i].Email == body["email"] {
				f.members[i].Role = body["role"]
			}
		}
	case len(parts) == 3 && parts[2] == "invite":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.members = append(f.members, remote.Member{UserID: "u" + body["email"], Email: body["email"], Role: body["role"]})
	case len(parts) == 4 && parts[2] == "members" && r.Method == http.MethodDelete:
		kept := f.members[:0]
		for _, m := range f.members {
			if m.UserID != parts[3] {
				kept = append(kept, m)
			}
		}
		f.members = kept
	case len(parts) == 3 && parts[2] == "tokens" && r.Method == http.MethodGet:
		reply(f.tokens)
	case len(parts) == 3 && parts[2] == "tokens" && r.Method == http.MethodPost:
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.tokens = append(f.tokens, remote.Token{ID: "t-" + body["name"], Name: body["name"], TokenPrefix: "edk_12"})
		reply(map[string]string{"token": "edk_1234567890"})
	case len(parts) == 4 && parts[2] == "tokens" && r.Method == http.MethodDelete:
		kept := f.tokens[:0]
		for _, t := range f.tokens {
			if t.ID != parts[3] {
				kept = append(kept, t)
			}
		}
		f.tokens = kept
	case len(parts) == 2 && parts[0] == "cli" && r.Method == http.MethodGet:
		reply(f.secrets[env])
	case len(parts) == 3 && parts[1] == "push":
		var body struct {
			Secrets map[string]string `json:"secrets"`
			Env     string            `json:"env"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.secrets[body.Env] = body.Secrets
		f.active[body.Env]++
		f.history[body.Env] = append(f.history[body.Env], remote.Version{Version: f.active[body.Env], CreatedAt: time.Now()})
	case len(parts) == 3 && parts[2] == "versions":
		reply(remote.VersionHistory{ActiveVersion: f.active[env], History: f.history[env]})
	case len(parts) == 3 && parts[2] == "rollback":
		var body struct {
			Env     string `json:"env"`
			Version int    `json:"version"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.active[body.Env] = body.Version
		f.secrets[body.Env] = f.restore[body.Version]
		reply(map[string]any{"variables": f.restore[body.Version]})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// scriptedPrompter answers prompts from queues and records every title.
type scriptedPrompter struct {
	t         *testing.T
	selects   []string
	inputs    []string
	confirms  []bool
	passwords []string
	titles    []string
}

func (p *scriptedPrompter) Select(title string, options []prompt.Option) (string, error) {
	p.titles = append(p.titles, title)
	if len(p.selects) == 0 {
		p.t.Fatalf("unexpected select prompt %q", title)
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	for _, o := range options {
		if o.Value == answer {
			return answer, nil
		}
	}
	p.t.Fatalf("answer %q is not an option of %q", answer, title)
	return "", nil
}

func (p *scriptedPrompter) Input(title, _ string, validate func(string) error) (string, error) {
	p.titles = append(p.titles, title)
	if len(p.inputs) == 0 {
		p.t.Fatalf("unexpected input prompt %q", title)
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (p *scriptedPrompter) Confirm(title string, _ bool) (bool, error) {
	p.titles = append(p.titles, title)
	if len(p.confirms) == 0 {
		p.t.Fatalf("unexpected confirm prompt %q", title)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptedPrompter) Password(title string) (string, error) {
	p.titles = append(p.titles, title)
	if len(p.passwords) == 0 {
		p.t.Fatalf("unexpected password prompt %q", title)
	}
	answer := p.passwords[0]
	p.passwords = p.passwords[1:]
	return answer, nil
}

type fixture struct {
	session *Session
	api     *fakeAPI
	prompt  *scriptedPrompter
	fs      afero.Fs
	config  *configs.MemoryStore
}

// newFixture returns a logged-in session on an in-memory filesystem.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	config := configs.NewMemoryStore()
	require.NoError(t, configs.SaveSession(config, "tok-1", configs.User{Name: "Ana", Email: "ana@example.com"}))

	client, err := remote.New(srv.URL, remote.WithToken("tok-1"))
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, 0o755))

	p := &scriptedPrompter{t: t}
	return &fixture{
		session: &Session{
			Fs:      fs,
			Dir:     testDir,
			Config:  config,
			Service: client,
			Prompt:  p,
			Audit:   audit.NewTrail(fs, "/data/envdock/audit.jsonl"),
		},
		api:    api,
		prompt: p,
		fs:     fs,
		config: config,
	}
}

func (f *fixture) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, filepath.Join(testDir, name), []byte(content), 0o644))
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, filepath.Join(testDir, name))
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) link(t *testing.T, env string) {
	t.Helper()
	f.write(t, ".envdock.json", fmt.Sprintf(`{"projectId":"p1","env":%q}`, env))
}

func (f *fixture) auditOps(t *testing.T) []string {
	t.Helper()
	entries, err := f.session.Audit.ReadEntries()
	require.NoError(t, err)
	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Operation)
	}
	return ops
}
