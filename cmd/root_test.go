package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/configs"
	"github.com/envdock/edk/internal/workflows"
)

func TestCommandsRequireLogin(t *testing.T) {
	guarded := [][]string{
		{"pull"},
		{"push", "--yes"},
		{"status"},
		{"team", "ls"},
		{"versions"},
		{"config", "show"},
	}

	for _, args := range guarded {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			cli := setupTestCLI(t, false, nil)

			output, err := cli.run(args...)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != 1 {
				t.Fatalf("Expected exit code 1, got %v", err)
			}
			if !strings.Contains(output, "You are not logged in.") {
				t.Errorf("Expected not-logged-in message, got: %s", output)
			}
			if cli.backend.requestCount() != 0 {
				t.Errorf("Expected no requests before login, got %d", cli.backend.requestCount())
			}
		})
	}
}

func TestLogoutRunsWithoutSession(t *testing.T) {
	cli := setupTestCLI(t, false, nil)

	output, err := cli.run("logout")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "You are not logged in.") {
		t.Errorf("Expected warning, got: %s", output)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	cli := setupTestCLI(t, true, nil)

	output, err := cli.run("logout")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "Logged out 'test@example.com'") {
		t.Errorf("Unexpected output: %s", output)
	}
	if token, _ := cli.config.Get("token"); token != "" {
		t.Errorf("Expected token to be cleared, got %q", token)
	}
}

// useCorruptConfigFile swaps the in-memory config for a file store whose
// backing file does not parse as TOML.
func useCorruptConfigFile(t *testing.T, cli *testCLI) string {
	t.Helper()
	path := "/home/dev/.config/envdock/config.toml"
	cli.writeFileAt(t, path, "token = [unterminated")

	store := configs.NewFileStore(cli.fs, path)
	store.Warnf = Logger.Warnf
	base := newSession
	newSession = func() (*workflows.Session, error) {
		s, err := base()
		if err != nil {
			return nil, err
		}
		s.Config = store
		return s, nil
	}
	return path
}

func TestCorruptConfigDoesNotBlockRecovery(t *testing.T) {
	t.Run("logout", func(t *testing.T) {
		cli := setupTestCLI(t, false, nil)
		useCorruptConfigFile(t, cli)

		output, err := cli.run("logout")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if strings.Contains(output, "failed to initialize session") {
			t.Errorf("Expected session to load, got: %s", output)
		}
		if !strings.Contains(output, "You are not logged in.") {
			t.Errorf("Unexpected output: %s", output)
		}
	})

	t.Run("config reset", func(t *testing.T) {
		cli := setupTestCLI(t, false, nil)
		path := useCorruptConfigFile(t, cli)
		cli.link(t, `{"projectId":"p1"}`)

		output, err := cli.run("config", "reset", "--yes")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.Contains(output, "Global config cleared") {
			t.Errorf("Unexpected output: %s", output)
		}
		if exists, _ := afero.Exists(cli.fs, path); exists {
			t.Error("Expected corrupt config file to be removed")
		}
		if exists, _ := afero.Exists(cli.fs, filepath.Join(testWorkDir, ".envdock.json")); exists {
			t.Error("Expected link descriptor to be removed")
		}
	})
}

func TestLoginWithStoredSession(t *testing.T) {
	cli := setupTestCLI(t, true, nil)

	output, err := cli.run("login", "test@example.com")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "You are already logged in") {
		t.Errorf("Unexpected output: %s", output)
	}
	if cli.backend.called("POST /auth/login") {
		t.Error("Expected no login request")
	}
}

func TestRequiresAuth(t *testing.T) {
	root := &cobra.Command{Use: "edk"}
	open := &cobra.Command{Use: "login", Annotations: map[string]string{annotationNoAuth: "true"}}
	group := &cobra.Command{Use: "team"}
	child := &cobra.Command{Use: "ls"}
	group.AddCommand(child)
	root.AddCommand(open, group)

	tests := []struct {
		cmd  *cobra.Command
		want bool
	}{
		{root, false},
		{open, false},
		{configResetCmd, false},
		{group, true},
		{child, true},
	}
	for _, tt := range tests {
		if got := requiresAuth(tt.cmd); got != tt.want {
			t.Errorf("requiresAuth(%s) = %t, want %t", tt.cmd.Name(), got, tt.want)
		}
	}
}
