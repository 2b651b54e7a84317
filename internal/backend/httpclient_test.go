package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ekazarova/rolodex/internal/common"
	"github.com/ekazarova/rolodex/internal/hashx"
)

func newClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)
	return c
}

func TestHTTPClient_Login_SendsFingerprintedBodyAndParsesTokens(t *testing.T) {
	var gotBody []byte
	var gotHash string

	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var err error
		gotBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		gotHash = r.Header.Get(common.IntegrityHeaderName)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"session": map[string]string{"id_token": "id-1", "access_token": "acc-1"},
		})
	}))

	tokens, err := c.Login(context.Background(), "user@example.com", "P@ssw0rd")
	require.NoError(t, err)
	require.Equal(t, "id-1", tokens.IDToken)
	require.Equal(t, "acc-1", tokens.AccessToken)

	// The integrity header must fingerprint the exact serialized body.
	require.Equal(t, hashx.Fingerprint(gotBody), gotHash)

	var creds map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &creds))
	require.Equal(t, "user@example.com", creds["username"])
	require.Equal(t, "P@ssw0rd", creds["password"])
}

func TestHTTPClient_Login_MapsStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"forbidden is invalid credentials", http.StatusForbidden, common.ErrInvalidCredentials},
		{"server error is login failed", http.StatusInternalServerError, common.ErrLoginFailed},
		{"bad request is login failed", http.StatusBadRequest, common.ErrLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			_, err := c.Login(context.Background(), "u", "p")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPClient_Refresh_MapsStatuses(t *testing.T) {
	t.Run("valid session returns tokens", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/auth/session", r.URL.Path)
			require.Empty(t, r.Header.Get(common.IntegrityHeaderName))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"session": map[string]string{"id_token": "id-2", "access_token": "acc-2"},
			})
		}))
		tokens, err := c.Refresh(context.Background())
		require.NoError(t, err)
		require.Equal(t, "acc-2", tokens.AccessToken)
	})

	t.Run("401 is unauthorized", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		_, err := c.Refresh(context.Background())
		require.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("other failure is session check failed", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		_, err := c.Refresh(context.Background())
		require.ErrorIs(t, err, common.ErrSessionCheckFailed)
	})
}

func TestHTTPClient_Logout_MapsFailure(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		// No body, so no integrity header either.
		require.Empty(t, r.Header.Get(common.IntegrityHeaderName))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	require.ErrorIs(t, c.Logout(context.Background()), common.ErrLogoutFailed)
}

func TestHTTPClient_ResetPassword(t *testing.T) {
	var gotBody []byte
	var gotHash string
	status := http.StatusOK

	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/reset-password", r.URL.Path)
		var err error
		gotBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		gotHash = r.Header.Get(common.IntegrityHeaderName)
		w.WriteHeader(status)
	}))

	require.NoError(t, c.ResetPassword(context.Background(), "a@example.com"))
	require.JSONEq(t, `{"email":"a@example.com"}`, string(gotBody))
	require.Equal(t, hashx.Fingerprint(gotBody), gotHash)

	status = http.StatusServiceUnavailable
	require.ErrorIs(t, c.ResetPassword(context.Background(), "a@example.com"), common.ErrResetFailed)
}

func TestHTTPClient_UnreachableBackendIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nothing listens anymore

	c, err := NewHTTPClient(url)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "u", "p")
	require.ErrorIs(t, err, common.ErrTransport)

	_, err = c.Refresh(context.Background())
	require.ErrorIs(t, err, common.ErrTransport)
}

func TestHTTPClient_KeepsSessionCookieBetweenCalls(t *testing.T) {
	var refreshCookie string

	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "s-123", Path: "/"})
			_ = json.NewEncoder(w).Encode(map[string]any{
				"session": map[string]string{"id_token": "id", "access_token": "acc"},
			})
		case "/auth/session":
			if ck, err := r.Cookie("session_id"); err == nil {
				refreshCookie = ck.Value
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"session": map[string]string{"id_token": "id", "access_token": "acc"},
			})
		}
	}))

	_, err := c.Login(context.Background(), "u", "p")
	require.NoError(t, err)

	_, err = c.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "s-123", refreshCookie)
}
