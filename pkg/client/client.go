// Package client talks to a running beatpath API server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/papercomputeco/beatpath/pkg/chain"
	"github.com/papercomputeco/beatpath/pkg/result"
)

const defaultTimeout = 30 * time.Second

// Client is an HTTP client for the beatpath API.
type Client struct {
	target *url.URL
	http   *http.Client
}

// New creates a client for the API at target (scheme + host + port).
// A zero timeout falls back to 30s.
func New(target string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid API target URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API target URL: %q", target)
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		target: u,
		http:   &http.Client{Timeout: timeout},
	}, nil
}

// PostPath sends one POST /api/path request. The body is decoded for any
// status code so that server error messages reach the caller.
func (c *Client) PostPath(ctx context.Context, req chain.Request) (*result.Reply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding path request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(chain.PathEndpoint), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating path request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to beatpath API at %s: %w", c.target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	reply := &result.Reply{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, &reply.Body); err != nil {
		return nil, fmt.Errorf("failed to parse path response (HTTP %d): %w", resp.StatusCode, err)
	}

	return reply, nil
}

// Teams lists the team names known to the server.
func (c *Client) Teams(ctx context.Context) (*chain.TeamsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(chain.TeamsEndpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("creating teams request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to beatpath API at %s: %w", c.target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("teams request failed (HTTP %d): %s", resp.StatusCode, string(body))
	}

	var out chain.TeamsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse teams response: %w", err)
	}

	return &out, nil
}

func (c *Client) endpoint(path string) string {
	u := *c.target
	u.Path = path
	u.RawQuery = ""
	return u.String()
}
