package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/envdock/edk/internal/dotenv"
	"github.com/envdock/edk/internal/environment"
	kerrors "github.com/envdock/edk/internal/errors"
)

// FrameworkPrefixes are the client-side bundler prefixes every secret is also exposed under.
var FrameworkPrefixes = []string{"REACT_APP_", "VITE_", "NEXT_PUBLIC_"}

// RunOptions configures the run workflow.
type RunOptions struct {
	Env string

	// Command is joined with spaces and handed to the system shell.
	Command []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Loaded is called once secrets are fetched, before the command starts.
	Loaded func(count int, env environment.Tier)
}

// RunResult reports how the child process ended.
type RunResult struct {
	Env      environment.Tier
	Loaded   int
	ExitCode int
}

// Run executes a shell command with the environment's secrets injected,
// forwarding interrupt and termination signals to it until it exits.
//
// A non-zero exit of the child is not an error; it is reported in ExitCode.
//
// Returns ErrNoCommand if Command is empty.
func Run(ctx context.Context, s *Session, opts RunOptions) (*RunResult, error) {
	projectID, env, err := s.engine().Resolve(opts.Env)
	if err != nil {
		return nil, err
	}
	command := strings.TrimSpace(strings.Join(opts.Command, " "))
	if command == "" {
		return nil, kerrors.ErrNoCommand
	}

	secrets, err := s.Service.FetchSecrets(ctx, projectID, env)
	if err != nil {
		return nil, fmt.Errorf("fetching %s secrets: %w", env, err)
	}
	if opts.Loaded != nil {
		opts.Loaded(len(secrets), env)
	}

	cmd := shellCommand(command)
	cmd.Dir = s.Dir
	cmd.Env = append(os.Environ(), environ(WithFrameworkAliases(secrets))...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %q: %w", command, err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, forwardedSignals...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	signal.Stop(signals)
	close(done)

	result := &RunResult{Env: env, Loaded: len(secrets)}
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode < 0 {
			result.ExitCode = 1
		}
	default:
		return nil, fmt.Errorf("waiting for %q: %w", command, waitErr)
	}
	return result, nil
}

// WithFrameworkAliases copies secrets and adds a prefixed alias for every key
// under each FrameworkPrefixes entry, unless the key already carries that
// prefix or the alias is explicitly defined.
func WithFrameworkAliases(secrets dotenv.SecretMap) dotenv.SecretMap {
	out := make(dotenv.SecretMap, len(secrets)*(len(FrameworkPrefixes)+1))
	for k, v := range secrets {
		out[k] = v
	}
	for _, key := range secrets.Keys() {
		for _, prefix := range FrameworkPrefixes {
			if strings.HasPrefix(key, prefix) {
				continue
			}
			alias := prefix + key
			if _, exists := out[alias]; exists {
				continue
			}
			out[alias] = secrets[key]
		}
	}
	return out
}

func environ(m dotenv.SecretMap) []string {
	env := make([]string, 0, len(m))
	for _, k := range m.Keys() {
		env = append(env, k+"="+m[k])
	}
	return env
}
