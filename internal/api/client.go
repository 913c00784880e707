package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "http://localhost:8000"

// ErrSessionExpired is returned when a protected call comes back 401. The
// caller is expected to clear the local session and route to login; the
// request is never retried.
var ErrSessionExpired = errors.New("session expired")

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client handles communication with the DataScope API
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

// ClientOption allows configuring the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithToken sets the bearer token used on protected calls
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new DataScope API client
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetToken updates the bearer token after a login
func (c *Client) SetToken(token string) {
	c.token = token
}

// doProtected performs an authenticated request. A missing token
// short-circuits without any network call, and a 401 response maps to
// ErrSessionExpired. Every error is terminal for the action; there is no
// retry anywhere in this client.
func (c *Client) doProtected(req *http.Request) (*http.Response, error) {
	if c.token == "" {
		return nil, ErrSessionExpired
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, ErrSessionExpired
	}

	return resp, nil
}

// apiError extracts a human-readable message from an error response body.
// The backend usually sends {"detail": "..."}; older endpoints used
// {"error": "..."} or {"message": "..."}. Falls back to a generic message.
func apiError(statusCode int, body []byte) error {
	var parsed map[string]any
	if json.Unmarshal(body, &parsed) == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if msg, ok := parsed[key].(string); ok && msg != "" {
				return fmt.Errorf("API error (status %d): %s", statusCode, msg)
			}
		}
	}
	return fmt.Errorf("API error (status %d)", statusCode)
}

// readBody drains and returns the response body.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
