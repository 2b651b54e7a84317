// Package services contains the application services of the rolodex client:
// the session manager (auth) and the contact store facade.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/ekazarova/rolodex/internal/backend"
	"github.com/ekazarova/rolodex/internal/logging"
	"github.com/ekazarova/rolodex/internal/models"
)

// AuthState is the session manager's externally observable state.
type AuthState string

const (
	// StateUnknown holds from process start until the bootstrap refresh.
	StateUnknown AuthState = "unknown"
	// StateAuthenticating marks an in-flight login or refresh.
	StateAuthenticating  AuthState = "authenticating"
	StateAuthenticated   AuthState = "authenticated"
	StateUnauthenticated AuthState = "unauthenticated"
)

// AuthService owns the client-side session.
//
// Contract:
//   - Bootstrap: the process-start refresh; callers must not render anything
//     until it resolves.
//   - Login/Refresh/Logout/ResetPassword: proxy the backend operations and
//     drive the state machine. Failures surface unchanged (sentinels from
//     the common package); nothing is retried.
//   - State/Current: snapshots of the machine and the held session.
type AuthService interface {
	Bootstrap(ctx context.Context) (models.Session, error)
	Login(ctx context.Context, username, password string) (models.Session, error)
	Refresh(ctx context.Context) (models.Session, error)
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
	State() AuthState
	Current() models.Session
	Close() error
}

type authService struct {
	client backend.Client
	log    logging.Logger

	mu     sync.Mutex
	state  AuthState
	tokens *models.TokenPair

	// now is a seam for token-expiry checks in tests.
	now func() time.Time
}

// NewAuthService constructs an AuthService bound to the given backend client.
// The session starts out Unknown and unauthenticated.
func NewAuthService(client backend.Client, log logging.Logger) AuthService {
	return &authService{
		client: client,
		log:    log,
		state:  StateUnknown,
		now:    time.Now,
	}
}

// Bootstrap performs the initial session check. It is a Refresh; the
// separate name exists so callers can express "block until hydrated".
func (a *authService) Bootstrap(ctx context.Context) (models.Session, error) {
	return a.Refresh(ctx)
}

// Login authenticates with the backend and installs the issued token pair.
// On failure the previous state is restored; the session changes only on
// explicit success.
func (a *authService) Login(ctx context.Context, username, password string) (models.Session, error) {
	prev := a.enterAuthenticating()

	tokens, err := a.client.Login(ctx, username, password)
	if err != nil {
		a.setState(prev, nil, keepTokens)
		a.log.Warn(ctx, "login failed", "error", err)
		return a.Current(), err
	}

	a.setState(StateAuthenticated, tokens, replaceTokens)
	a.log.Info(ctx, "logged in", "user", username)
	return a.Current(), nil
}

// Refresh asks the backend whether a valid session exists and hydrates the
// token pair from it. Any failure destroys the local session and lands in
// Unauthenticated.
func (a *authService) Refresh(ctx context.Context) (models.Session, error) {
	a.enterAuthenticating()

	tokens, err := a.client.Refresh(ctx)
	if err != nil {
		a.setState(StateUnauthenticated, nil, replaceTokens)
		a.log.Info(ctx, "session check failed", "error", err)
		return a.Current(), err
	}

	a.setState(StateAuthenticated, tokens, replaceTokens)
	return a.Current(), nil
}

// Logout requests session termination. Local state is cleared regardless of
// the backend's answer — the session is client-observed state and keeping a
// stale authenticated flag after a failed call would be wrong — but the
// error is still reported.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)

	a.setState(StateUnauthenticated, nil, replaceTokens)
	if err != nil {
		a.log.Warn(ctx, "logout failed, local session cleared anyway", "error", err)
		return err
	}
	a.log.Info(ctx, "logged out")
	return nil
}

// ResetPassword requests a reset email. Session state is never touched.
func (a *authService) ResetPassword(ctx context.Context, email string) error {
	if err := a.client.ResetPassword(ctx, email); err != nil {
		a.log.Warn(ctx, "password reset failed", "error", err)
		return err
	}
	a.log.Info(ctx, "password reset requested", "email", email)
	return nil
}

func (a *authService) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Current returns a snapshot of the session. Authenticated is true iff a
// token pair is held and its ID token has not expired.
func (a *authService) Current() models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tokens == nil {
		return models.Session{}
	}
	if tokenExpired(a.now(), a.tokens.IDToken) {
		return models.Session{Tokens: a.tokens}
	}
	return models.Session{Authenticated: true, Tokens: a.tokens}
}

func (a *authService) Close() error {
	return a.client.Close()
}

type tokenMode bool

const (
	keepTokens    tokenMode = false
	replaceTokens tokenMode = true
)

// enterAuthenticating flips the machine to Authenticating and returns the
// state it left, so a failed login can restore it.
func (a *authService) enterAuthenticating() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.state
	a.state = StateAuthenticating
	return prev
}

func (a *authService) setState(state AuthState, tokens *models.TokenPair, mode tokenMode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = state
	if mode == replaceTokens {
		a.tokens = tokens
	}
}
