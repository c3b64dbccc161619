// Package api is a thin client for the library REST service. Responses
// come back as decoded, untyped JSON; internal/normalize turns them into
// domain records.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is where the service listens in a local install.
const DefaultBaseURL = "http://localhost:8000/api"

const defaultUserAgent = "libdesk/0.1"

// Client talks to the library API. It holds no credentials; every
// authenticated call takes the bearer token explicitly.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// New creates a Client for baseURL. A zero timeout leaves requests to the
// transport's own limits.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// do sends one request and returns the decoded JSON body. An empty body
// decodes to nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body any) (any, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	reqURL := *c.baseURL
	reqURL.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	var payload any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			if resp.StatusCode >= 300 {
				return nil, &Error{Status: resp.StatusCode, Message: "API request failed"}
			}
			return nil, networkError(fmt.Errorf("decode response: %w", err))
		}
	}

	if err := checkStatus(resp, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// checkStatus returns an *Error for non-2xx responses, carrying the
// server's message when it sent one.
func checkStatus(resp *http.Response, payload any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := "API request failed"
	if obj, ok := payload.(map[string]any); ok {
		if m, ok := obj["message"].(string); ok && m != "" {
			msg = m
		}
	}
	return &Error{Status: resp.StatusCode, Message: msg, Data: payload}
}

// parseBaseURL accepts a full URL or a bare host:port, defaulting to http.
func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api base url %q has no host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
