package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether the ID token's exp claim lies in the past.
//
// The claim is read with an unverified parse: signature verification belongs
// to the backend, the client only needs the lifetime. Tokens that are not
// JWTs or carry no exp claim are treated as non-expiring and left to the
// backend to reject.
func tokenExpired(now time.Time, tokenString string) bool {
	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
