// Package client provides a thin HTTP client for the resale-analyzer API.
package client

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Client is a thin HTTP client for the resale-analyzer API.
type Client struct {
	baseURL string
	rc      *resty.Client
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	c.rc = resty.New().
		SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithRestyClient replaces the underlying resty client. The base URL is
// applied to the replacement.
func WithRestyClient(rc *resty.Client) Option {
	return func(c *Client) {
		c.rc = rc.SetBaseURL(c.baseURL)
	}
}

// handleError turns transport failures and error-status responses into
// errors. Without this, a 4xx/5xx response would come back with nil error.
func (c *Client) handleError(resp *resty.Response, err error) error {
	if err != nil {
		if isConnectionRefused(err) {
			return fmt.Errorf("API server not running at %s", c.baseURL)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func isConnectionRefused(err error) bool {
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "connect: connection refused")
}
