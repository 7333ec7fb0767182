package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/envdock/edk/internal/dotenv"
	"github.com/envdock/edk/internal/environment"
)

// Person identifies the author of a version or token.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Version is one entry in an environment's secret history.
type Version struct {
	Version   int       `json:"version"`
	CreatedBy *Person   `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// VersionHistory is the ordered history of an environment plus its active version.
type VersionHistory struct {
	ActiveVersion int       `json:"activeVersion"`
	History       []Version `json:"history"`
}

// Find returns the history entry for version n.
func (h *VersionHistory) Find(n int) (Version, bool) {
	if h == nil {
		return Version{}, false
	}
	for _, v := range h.History {
		if v.Version == n {
			return v, true
		}
	}
	return Version{}, false
}

// Inactive returns every history entry except the active one.
func (h *VersionHistory) Inactive() []Version {
	if h == nil {
		return nil
	}
	out := make([]Version, 0, len(h.History))
	for _, v := range h.History {
		if v.Version != h.ActiveVersion {
			out = append(out, v)
		}
	}
	return out
}

// wireSecrets decodes a secret map whose values may be JSON numbers or
// booleans. Those keep their literal text, so {"PORT":3000} becomes PORT=3000.
// A null value becomes the empty string.
type wireSecrets dotenv.SecretMap

func (w *wireSecrets) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*w = nil
		return nil
	}

	out := make(wireSecrets, len(raw))
	for key, value := range raw {
		text, err := literalText(value)
		if err != nil {
			return fmt.Errorf("secret %s: %w", key, err)
		}
		out[key] = text
	}
	*w = out
	return nil
}

func literalText(value json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err != nil {
			return "", err
		}
		return compact.String(), nil
	}
}

// FetchSecrets returns the current secret map of a project environment.
func (c *Client) FetchSecrets(ctx context.Context, projectID string, env environment.Tier) (dotenv.SecretMap, error) {
	path := fmt.Sprintf("/cli/%s?env=%s", escape(projectID), url.QueryEscape(env.String()))
	var secrets wireSecrets
	if err := c.do(ctx, "fetch secrets", http.MethodGet, path, nil, &secrets); err != nil {
		return nil, err
	}
	if secrets == nil {
		return dotenv.SecretMap{}, nil
	}
	return dotenv.SecretMap(secrets), nil
}

// ReplaceSecrets overwrites the environment's secret set with secrets.
func (c *Client) ReplaceSecrets(ctx context.Context, projectID string, env environment.Tier, secrets dotenv.SecretMap) error {
	body := struct {
		Secrets dotenv.SecretMap `json:"secrets"`
		Env     string           `json:"env"`
	}{Secrets: secrets, Env: env.String()}
	return c.do(ctx, "push secrets", http.MethodPost, "/cli/push/"+escape(projectID), body, nil)
}

// FetchVersionHistory returns the version history of a project environment.
func (c *Client) FetchVersionHistory(ctx context.Context, projectID string, env environment.Tier) (*VersionHistory, error) {
	path := fmt.Sprintf("/cli/%s/versions?env=%s", escape(projectID), url.QueryEscape(env.String()))
	var history VersionHistory
	if err := c.do(ctx, "fetch version history", http.MethodGet, path, nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// Rollback makes version the active one and returns the restored secrets.
// The map is nil when the response carries no variables.
func (c *Client) Rollback(ctx context.Context, projectID string, env environment.Tier, version int) (dotenv.SecretMap, error) {
	body := struct {
		Env     string `json:"env"`
		Version int    `json:"version"`
	}{Env: env.String(), Version: version}
	var resp struct {
		Variables wireSecrets `json:"variables"`
	}
	if err := c.do(ctx, "rollback", http.MethodPost, "/cli/"+escape(projectID)+"/rollback", body, &resp); err != nil {
		return nil, err
	}
	if resp.Variables == nil {
		return nil, nil
	}
	return dotenv.SecretMap(resp.Variables), nil
}
