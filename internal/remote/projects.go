package remote

import (
	"context"
	"net/http"
	"time"
)

// Project describes a secrets project.
type Project struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// AuditLog is one server-side audit event of a project.
type AuditLog struct {
	Action    string    `json:"action"`
	UserEmail string    `json:"userEmail"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// Member is a user with a role on a project.
type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Token is a CI token as listed by the service; the secret itself is never returned.
type Token struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	TokenPrefix string    `json:"tokenPrefix"`
	CreatedBy   *Person   `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListProjects returns the projects visible to the current user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var stats struct {
		Projects []Project `json:"projects"`
	}
	if err := c.do(ctx, "list projects", http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats.Projects, nil
}

// CreateProject creates a project owned by the current user.
func (c *Client) CreateProject(ctx context.Context, name string) (*Project, error) {
	var project Project
	if err := c.do(ctx, "create project", http.MethodPost, "/projects", map[string]string{"name": name}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject returns a single project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.do(ctx, "fetch project", http.MethodGet, "/projects/"+escape(projectID), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// AuditLogs returns the server-side audit trail of a project.
func (c *Client) AuditLogs(ctx context.Context, projectID string) ([]AuditLog, error) {
	var logs []AuditLog
	if err := c.do(ctx, "fetch history", http.MethodGet, "/projects/"+escape(projectID)+"/audit-logs", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListMembers returns the members of a project.
func (c *Client) ListMembers(ctx context.Context, projectID string) ([]Member, error) {
	var members []Member
	if err := c.do(ctx, "list members", http.MethodGet, "/projects/cli/"+escape(projectID)+"/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// InviteMember adds email to the project with role.
func (c *Client) InviteMember(ctx context.Context, projectID, email, role string) error {
	body := map[string]string{"email": email, "role": role}
	return c.do(ctx, "invite member", http.MethodPost, "/projects/"+escape(projectID)+"/invite", body, nil)
}

// UpdateMemberRole changes the role of an existing member.
func (c *Client) UpdateMemberRole(ctx context.Context, projectID, email, role string) error {
	body := map[string]string{"email": email, "role": role}
	return c.do(ctx, "update member", http.MethodPut, "/projects/cli/"+escape(projectID)+"/members", body, nil)
}

// RemoveMember removes a user from the project.
func (c *Client) RemoveMember(ctx context.Context, projectID, userID string) error {
	return c.do(ctx, "remove member", http.MethodDelete, "/projects/"+escape(projectID)+"/members/"+escape(userID), nil, nil)
}

// ListTokens returns the CI tokens of a project.
func (c *Client) ListTokens(ctx context.Context, projectID string) ([]Token, error) {
	var tokens []Token
	if err := c.do(ctx, "list tokens", http.MethodGet, "/projects/"+escape(projectID)+"/tokens", nil, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// CreateToken issues a new CI token and returns its secret value.
func (c *Client) CreateToken(ctx context.Context, projectID, name string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "create token", http.MethodPost, "/projects/"+escape(projectID)+"/tokens", map[string]string{"name": name}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// RevokeToken deletes a CI token.
func (c *Client) RevokeToken(ctx context.Context, projectID, tokenID string) error {
	return c.do(ctx, "revoke token", http.MethodDelete, "/projects/"+escape(projectID)+"/tokens/"+escape(tokenID), nil, nil)
}
