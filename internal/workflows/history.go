package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/envdock/edk/internal/audit"
	kerrors "github.com/envdock/edk/internal/errors"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	// Local reads the local audit trail instead of the project's server log.
	Local bool

	// Limit keeps only the most recent entries. Zero keeps all.
	Limit int
}

// HistoryEvent is one row of project history, from either source.
type HistoryEvent struct {
	Action  string
	User    string
	Details string
	At      time.Time
}

// HistoryResult contains the events, oldest first.
type HistoryResult struct {
	ProjectID string
	Local     bool
	Events    []HistoryEvent
}

// History returns the audit history of the linked project.
//
// The local trail is read even when the directory is not linked; it is then
// unfiltered. The server log requires a link.
func History(ctx context.Context, s *Session, opts HistoryOptions) (*HistoryResult, error) {
	if opts.Local {
		return localHistory(s, opts)
	}

	projectID, err := s.project()
	if err != nil {
		return nil, err
	}
	logs, err := s.Service.AuditLogs(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}

	result := &HistoryResult{ProjectID: projectID}
	for _, l := range logs {
		result.Events = append(result.Events, HistoryEvent{
			Action:  l.Action,
			User:    l.UserEmail,
			Details: l.Details,
			At:      l.CreatedAt,
		})
	}
	if opts.Limit > 0 && len(result.Events) > opts.Limit {
		result.Events = result.Events[len(result.Events)-opts.Limit:]
	}
	return result, nil
}

func localHistory(s *Session, opts HistoryOptions) (*HistoryResult, error) {
	result := &HistoryResult{Local: true}
	if s.Audit == nil {
		return result, nil
	}

	projectID, err := s.project()
	if err != nil && !errors.Is(err, kerrors.ErrNotLinked) {
		return nil, err
	}
	result.ProjectID = projectID

	entries, err := s.Audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading local audit trail: %w", err)
	}
	if projectID != "" {
		entries = audit.Filter(entries, func(e audit.Entry) bool {
			return e.ProjectID == projectID || (e.Operation == audit.OpReset && e.Dir == s.Dir)
		})
	}
	entries = audit.Tail(entries, opts.Limit)

	for _, e := range entries {
		result.Events = append(result.Events, HistoryEvent{
			Action:  e.Operation,
			User:    e.User,
			Details: localDetails(e),
			At:      e.Time(),
		})
	}
	return result, nil
}

func localDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpPull, audit.OpPush:
		return fmt.Sprintf("%d secrets, %s", e.Count, e.Env)
	case audit.OpRollback:
		return fmt.Sprintf("restored v%d, %s", e.Version, e.Env)
	case audit.OpLink:
		return fmt.Sprintf("%s (default %s)", e.Dir, e.Env)
	default:
		return e.Dir
	}
}
