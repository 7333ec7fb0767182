// Package cmd contains testing utilities shared between command tests.
// This file provides a fake envdock backend, an in-memory session and
// output capture for running the CLI end to end.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/envdock/edk/internal/audit"
	"github.com/envdock/edk/internal/configs"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/remote"
	"github.com/envdock/edk/internal/workflows"
)

const testWorkDir = "/work/app"

// testBackend serves canned responses keyed by "METHOD /path" and records every request.
type testBackend struct {
	mu       sync.Mutex
	routes   map[string]any
	requests []string
	bodies   map[string]string
}

func (b *testBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	route := r.Method + " " + r.URL.Path
	b.requests = append(b.requests, route)
	body, _ := io.ReadAll(r.Body)
	b.bodies[route] = string(body)

	reply, ok := b.routes[route]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
		return
	}
	if status, ok := reply.(int); ok {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": http.StatusText(status)})
		return
	}
	_ = json.NewEncoder(w).Encode(reply)
}

func (b *testBackend) called(route string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.requests {
		if r == route {
			return true
		}
	}
	return false
}

func (b *testBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *testBackend) body(route string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[route]
}

// testCLI is the state behind one end-to-end command run.
type testCLI struct {
	fs      afero.Fs
	config  *configs.MemoryStore
	backend *testBackend
}

// setupTestCLI resets global command state and points newSession at an
// in-memory filesystem and a fake backend. loggedIn stores a session token.
func setupTestCLI(t *testing.T, loggedIn bool, routes map[string]any) *testCLI {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	backend := &testBackend{routes: routes, bodies: map[string]string{}}
	if backend.routes == nil {
		backend.routes = map[string]any{}
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	config := configs.NewMemoryStore()
	if loggedIn {
		if err := configs.SaveSession(config, "tok-test", configs.User{Name: "Test User", Email: "test@example.com"}); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}
	}

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(testWorkDir, 0o755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}

	ResetGlobalState()
	t.Cleanup(ResetGlobalState)

	newSession = func() (*workflows.Session, error) {
		token, _ := config.Get(configs.KeyToken)
		client, err := remote.New(srv.URL, remote.WithToken(token))
		if err != nil {
			return nil, err
		}
		return &workflows.Session{
			Fs:      fs,
			Dir:     testWorkDir,
			Config:  config,
			Service: client,
			Prompt:  prompt.NonInteractive{AssumeYes: assumeYes},
			Audit:   audit.NewTrail(fs, "/data/envdock/audit.jsonl"),
		}, nil
	}

	return &testCLI{fs: fs, config: config, backend: backend}
}

// link writes a descriptor into the work dir.
func (c *testCLI) link(t *testing.T, descriptor string) {
	t.Helper()
	c.writeFile(t, ".envdock.json", descriptor)
}

func (c *testCLI) writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := afero.WriteFile(c.fs, filepath.Join(testWorkDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// writeFileAt writes content at an absolute path on the test filesystem.
func (c *testCLI) writeFileAt(t *testing.T, path, content string) {
	t.Helper()
	if err := c.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(c.fs, path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func (c *testCLI) readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := afero.ReadFile(c.fs, filepath.Join(testWorkDir, name))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// run executes the root command with args and returns everything printed.
func (c *testCLI) run(args ...string) (string, error) {
	return captureOutput(func() error {
		RootCmd.SetArgs(args)
		return RootCmd.ExecuteContext(context.Background())
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	collect := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}
	go collect(stdoutReader)
	go collect(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}
