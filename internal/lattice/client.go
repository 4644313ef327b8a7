// Package lattice implements the HTTP client for the Lattice control plane.
//
// Every operation is a thin request/response wrapper: build a typed request,
// POST/GET it, decode the typed response. The control plane owns all job
// execution; this client only submits work and reads state back.
//
// Architecture:
//
//	lattice CLI                              Lattice control plane
//	┌─────────────┐   POST /api/v1/...      ┌──────────────────┐
//	│   Client    │ ──────────────────────▶ │ registry, jobs,  │
//	│             │ ◀────────────────────── │ endpoints, metrics│
//	└─────────────┘      JSON response      └──────────────────┘
package lattice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiPrefix = "/api/v1"

// Client provides HTTP access to the Lattice control plane.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// Debug callback (optional)
	debugFunc func(format string, args ...any)
}

// ClientConfig holds configuration for the control-plane client.
type ClientConfig struct {
	// BaseURL is the control-plane base URL (e.g., "https://api.lattice-ml.dev")
	BaseURL string

	// Token is the API token used as a bearer credential
	Token string

	// Timeout is the HTTP request timeout (default: 30s)
	Timeout time.Duration

	// DebugFunc is an optional callback for debug logging
	DebugFunc func(format string, args ...any)
}

// NewClient creates a new control-plane client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		debugFunc: cfg.DebugFunc,
	}
}

// BaseURL returns the configured control-plane base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// debug logs a message if a debug function is configured.
func (c *Client) debug(format string, args ...any) {
	if c.debugFunc != nil {
		c.debugFunc(format, args...)
	}
}

// Ping verifies connectivity and credentials against the control plane.
func (c *Client) Ping(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, apiPrefix+"/ping", nil, nil)
}

// doRequest performs an HTTP request with authentication and JSON handling.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
		c.debug("request: %s %s - body: %s", method, path, string(jsonData))
	} else {
		c.debug("request: %s %s", method, path)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.debug("response: %d - %s", resp.StatusCode, string(respBody))

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			apiErr.StatusCode = resp.StatusCode
			return &apiErr
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// doRaw performs an HTTP request with an opaque body and returns the raw
// response bytes. Used for endpoint invocation, where payload encoding is a
// contract between the caller and the serving container, not this client.
func (c *Client) doRaw(ctx context.Context, method, path, contentType, accept string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.debug("response: %d - %d bytes", resp.StatusCode, len(respBody))

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			apiErr.StatusCode = resp.StatusCode
			return nil, &apiErr
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
