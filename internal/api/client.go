// Package api holds the HTTP plumbing shared by the storefront REST
// clients: base URL handling, auth header injection, JSON codec, and the
// mapping from HTTP statuses to error codes.
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

	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
)

const errorBodyReadLimit int64 = 2048

// TokenSource supplies the session credential attached to authenticated
// requests. An empty token means the request goes out anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client is the shared transport for the storefront API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenSource attaches a session token source.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds a transport rooted at baseURL (the host part, without the
// /api suffix).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("api base URL is required")
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// BaseURL reports the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET against path (absolute, e.g. "/api/products/") and
// decodes the JSON response into out when out is non-nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	body, _, err := c.do(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// GetRaw issues a GET and returns the raw payload plus its content type,
// for endpoints serving file downloads.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, nil)
}

// Post issues a JSON POST and decodes the response into out when non-nil.
func (c *Client) Post(ctx context.Context, path string, payload any, out any, headers ...Header) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request payload")
	}
	body, _, err := c.do(ctx, http.MethodPost, path, nil, encoded, headers)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Put issues a JSON PUT and decodes the response into out when non-nil.
func (c *Client) Put(ctx context.Context, path string, payload any, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request payload")
	}
	body, _, err := c.do(ctx, http.MethodPut, path, nil, encoded, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Header is an extra request header attached to a single call.
type Header struct {
	Key   string
	Value string
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, headers []Header) ([]byte, string, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response body")
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response body")
	}
	return nil
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	detail := extractDetail(snippet)
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, detail)

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, cause, detail)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, cause, "authentication required")
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, cause, "resource not found")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, "storefront api request failed")
	}
}

// extractDetail pulls the human-readable message out of DRF-style error
// bodies ({"detail": "..."} or {"error": "..."}), falling back to the raw
// snippet.
func extractDetail(snippet []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(snippet, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(snippet))
}
