// Package backend defines the contract of the authentication backend and
// its HTTP implementation. The backend owns credential verification and
// session lifetime; this package only speaks its wire protocol and maps
// failures onto the shared sentinel errors.
package backend

import (
	"context"

	"github.com/ekazarova/rolodex/internal/models"
)

// Client is the session backend as seen by the auth service.
//
// All methods honor context cancellation. A network-level failure is
// reported as common.ErrTransport (wrapped with the cause); protocol-level
// failures map per operation:
//
//	Login:         403 → ErrInvalidCredentials, other non-2xx → ErrLoginFailed
//	Refresh:       401 → ErrUnauthorized, other non-2xx → ErrSessionCheckFailed
//	Logout:        non-2xx → ErrLogoutFailed
//	ResetPassword: non-2xx → ErrResetFailed
type Client interface {
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context) (*models.TokenPair, error)
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
	Close() error
}
