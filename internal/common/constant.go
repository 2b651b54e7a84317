package common

// IntegrityHeaderName is the HTTP header carrying the hex-encoded SHA-256
// fingerprint of the request body on credential-bearing requests.
const IntegrityHeaderName = "x-amz-content-sha256"
