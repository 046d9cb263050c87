package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher returns the remote document merged into the store on each poll.
// Implemented by *Client; tests substitute their own.
type Fetcher interface {
	Fetch(ctx context.Context) (map[string]any, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client fetches a JSON object over HTTP.
type Client struct {
	baseURL   *url.URL
	path      string
	http      *http.Client
	userAgent string
}

const (
	defaultPath      = "/api/state"
	defaultUserAgent = "statekit/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for addr (host:port or URL). path defaults to
// /api/state.
func NewClient(addr, path string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &Client{
		baseURL: base,
		path:    path,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// URL returns the absolute URL Fetch requests.
func (c *Client) URL() string {
	return c.baseURL.ResolveReference(&url.URL{Path: c.path}).String()
}

// Fetch retrieves the document. The response must be a JSON object.
func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload map[string]any
	if err := c.do(ctx, http.MethodGet, c.path, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("source %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return nil, fmt.Errorf("source address is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse source address %q: %w", addr, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("source address %q has no host", addr)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
