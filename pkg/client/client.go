// Package client is a typed REST client for the pollution backend. All
// auth state lives in an explicit Session owned by the caller; nothing
// is global and failed calls never touch it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const pingTimeout = 15 * time.Second

// Session carries the caller's identity between requests. A zero
// Session is an anonymous caller.
type Session struct {
	UserID       string
	AccessToken  string
	IDToken      string
	RefreshToken string
}

// LoggedIn reports whether the session carries an authenticated user.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != ""
}

// Client calls the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Timeouts are the
// caller's choice; the client itself only enforces one on Ping.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession attaches an existing session.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    &Session{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session this client reads and writes.
func (c *Client) Session() *Session {
	return c.session
}

// envelope mirrors the server's single response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Get issues a GET and decodes the envelope's data into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post issues a POST and decodes the envelope's data into out.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

// Put issues a PUT and decodes the envelope's data into out.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

// Delete issues a DELETE and decodes the envelope's data into out.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, out)
}

// Ping probes /health with a fixed timeout, the only timeout this
// client imposes on its own.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session != nil && c.session.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("request returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		message := env.Error
		if message == "" {
			message = fmt.Sprintf("request returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("%s", message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
