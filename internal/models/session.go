package models

// TokenPair is the backend-issued proof of authentication.
type TokenPair struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
}

// Session is the client-held authentication state. Authenticated is true
// iff a non-expired token pair is held.
type Session struct {
	Authenticated bool
	Tokens        *TokenPair
}
