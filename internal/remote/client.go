package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	kerrors "github.com/envdock/edk/internal/errors"
)

// DefaultTimeout bounds every request to the service.
const DefaultTimeout = 10 * time.Second

// UnreachableMessage is shown when the service cannot be reached at all.
const UnreachableMessage = "Network unreachable. Check your internet connection."

// Client provides typed access to the envdock API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	requestID  func() string
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithToken sets the session token sent as a Bearer credential.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithRequestID overrides the X-Request-ID generator.
func WithRequestID(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.requestID = gen
		}
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// BaseURL returns the normalised API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, op, method, path string, body, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	kind := kerrors.RemoteWrite
	if method == http.MethodGet {
		kind = kerrors.RemoteFetch
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.requestID())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(op, kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &kerrors.RemoteError{
			Op:      op,
			Kind:    kind,
			Status:  resp.StatusCode,
			Message: extractMessage(resp.Body),
			Cause:   statusCause(resp.StatusCode),
		}
	}

	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &kerrors.RemoteError{
			Op:   op,
			Kind: kind,
			Err:  fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func transportError(op string, kind kerrors.RemoteKind, err error) error {
	remoteErr := &kerrors.RemoteError{Op: op, Kind: kind, Err: err}
	if isUnreachable(err) {
		remoteErr.Cause = kerrors.ErrNetworkUnreachable
		remoteErr.Message = UnreachableMessage
	}
	return remoteErr
}

func isUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

func statusCause(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return kerrors.ErrNotLoggedIn
	case http.StatusForbidden:
		return kerrors.ErrAccessDenied
	case http.StatusNotFound:
		return kerrors.ErrNotFound
	default:
		return nil
	}
}

func extractMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	if payload.Message != "" {
		return strings.TrimSpace(payload.Message)
	}
	return strings.TrimSpace(payload.Error)
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
