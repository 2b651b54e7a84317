// Package common defines shared constants and sentinel errors used across
// the rolodex client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth domain. The backend client maps HTTP statuses onto these; the
	// session manager surfaces them to the caller unchanged.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrLoginFailed        = errors.New("login failed")
	ErrSessionCheckFailed = errors.New("session check failed")
	ErrLogoutFailed       = errors.New("logout failed")
	ErrResetFailed        = errors.New("password reset failed")

	// Store domain.
	ErrNotFound = errors.New("not found")

	// ErrTransport marks a network/backend-unreachable failure in any
	// domain. It is always wrapped together with the underlying cause.
	ErrTransport = errors.New("backend unreachable")
)
