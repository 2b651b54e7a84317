// Package hashx provides request-body fingerprinting.
package hashx

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the hex-encoded SHA-256 digest of payload.
//
// The digest is attached to credential-bearing requests as a tamper-evidence
// value alongside the payload itself; it provides no secrecy. The function is
// pure and deterministic: equal payloads always produce equal fingerprints.
//
// Example:
//
//	h := hashx.Fingerprint([]byte(`{"email":"a@example.com"}`))
//	req.Header.Set(common.IntegrityHeaderName, h)
func Fingerprint(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
