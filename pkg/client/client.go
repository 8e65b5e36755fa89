// Package client is a typed Go client for the CurioVault HTTP API.
//
// The client injects the access token as a bearer header on every call and
// transparently refreshes it once when a request comes back 401. The refresh
// token travels in an httponly cookie managed by the embedded cookie jar, so
// callers only ever see access tokens.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a CurioVault server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	accessToken string

	// refreshMu collapses concurrent refresh attempts into one round trip.
	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// attached if the given client has none, since the refresh flow depends on
// the refresh cookie surviving between calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAccessToken seeds the client with an existing access token.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}

	return c, nil
}

// AccessToken returns the current access token, if any.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken replaces the current access token.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// do performs a JSON request against path, decoding a successful response
// into out (which may be nil). A 401 on an authenticated call triggers one
// token refresh followed by one retry of the original request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	send := func() (*http.Response, error) {
		req, err := c.newRequest(ctx, method, path, query)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Body = io.NopCloser(bytes.NewReader(payload))
			req.ContentLength = int64(len(payload))
			req.Header.Set("Content-Type", "application/json")
		}
		return c.httpClient.Do(req)
	}

	resp, err := send()
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.AccessToken() != "" && !isAuthPath(path) {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := c.refreshAccessToken(ctx); err != nil {
			return err
		}
		resp, err = send()
		if err != nil {
			return err
		}
	}

	return decodeResponse(resp, out)
}

// doMultipart uploads a single file under the form field "image". It shares
// the 401-refresh-retry behavior of do.
func (c *Client) doMultipart(ctx context.Context, method, path, filename string, data []byte, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}

	send := func() (*http.Response, error) {
		req, err := c.newRequest(ctx, method, path, nil)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(buf.Bytes()))
		req.ContentLength = int64(buf.Len())
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return c.httpClient.Do(req)
	}

	resp, err := send()
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.AccessToken() != "" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := c.refreshAccessToken(ctx); err != nil {
			return err
		}
		resp, err = send()
		if err != nil {
			return err
		}
	}

	return decodeResponse(resp, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// refreshAccessToken exchanges the refresh cookie for a new access token.
// Concurrent callers are serialized; a caller that arrives while another
// refresh is in flight reuses its result instead of hitting the server again.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	stale := c.AccessToken()

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another goroutine refreshed while we waited for the lock.
	if current := c.AccessToken(); current != "" && current != stale {
		return nil
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/refresh", nil)
	if err != nil {
		return err
	}
	// The refresh route authenticates with the cookie, not the stale token.
	req.Header.Del("Authorization")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	var session SessionResponse
	if err := decodeResponse(resp, &session); err != nil {
		return err
	}

	c.SetAccessToken(session.AccessToken)
	return nil
}

// isAuthPath reports whether path belongs to the auth surface, where a 401
// is a real answer rather than a stale token.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

// decodeResponse normalizes error bodies into *APIError and decodes success
// bodies into out.
func decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
