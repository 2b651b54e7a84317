package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/ekazarova/rolodex/internal/common"
	"github.com/ekazarova/rolodex/internal/hashx"
	"github.com/ekazarova/rolodex/internal/models"
)

const requestTimeout = 15 * time.Second

// HTTPClient talks to the auth backend over HTTP. A cookie jar keeps the
// backend's session_id cookie between calls, which is how refresh and
// logout identify the server-side session.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient builds a client for the backend rooted at baseURL
// (e.g. "https://example.com").
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Jar: jar, Timeout: requestTimeout},
	}, nil
}

// sessionResponse is the backend's success body for login and refresh.
type sessionResponse struct {
	Session models.TokenPair `json:"session"`
}

// Login posts the credentials, fingerprinted, and returns the issued token
// pair.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login body: %w", err)
	}

	resp, err := c.post(ctx, "/auth/login", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, common.ErrInvalidCredentials
	}
	if !is2xx(resp.StatusCode) {
		return nil, fmt.Errorf("%w: backend returned %d", common.ErrLoginFailed, resp.StatusCode)
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: failed to decode session: %v", common.ErrLoginFailed, err)
	}
	return &sr.Session, nil
}

// Refresh asks the backend whether the session (identified by its cookie)
// is still valid and returns the current token pair.
func (c *HTTPClient) Refresh(ctx context.Context) (*models.TokenPair, error) {
	resp, err := c.get(ctx, "/auth/session")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, common.ErrUnauthorized
	}
	if !is2xx(resp.StatusCode) {
		return nil, fmt.Errorf("%w: backend returned %d", common.ErrSessionCheckFailed, resp.StatusCode)
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: failed to decode session: %v", common.ErrSessionCheckFailed, err)
	}
	return &sr.Session, nil
}

// Logout asks the backend to terminate the session.
func (c *HTTPClient) Logout(ctx context.Context) error {
	resp, err := c.post(ctx, "/auth/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("%w: backend returned %d", common.ErrLogoutFailed, resp.StatusCode)
	}
	return nil
}

// ResetPassword requests an out-of-band reset email. Session state is not
// involved.
func (c *HTTPClient) ResetPassword(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("failed to encode reset body: %w", err)
	}

	resp, err := c.post(ctx, "/auth/reset-password", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("%w: backend returned %d", common.ErrResetFailed, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// post sends body (may be nil) to path. A non-empty body carries its
// SHA-256 fingerprint in the integrity header; bodyless requests skip
// hashing.
func (c *HTTPClient) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(common.IntegrityHeaderName, hashx.Fingerprint(body))
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	return resp, nil
}

func (c *HTTPClient) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	return resp, nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
