// Package auth implements token issuance, validation, and revocation on top
// of the session store, plus the authorization gate the dispatcher calls
// before protected operations.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer produces hex-encoded HMAC-SHA256 signatures with a process-wide
// secret. Verification is recomputing the signature and comparing; there is
// no separate verify entry point.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the lowercase hex HMAC-SHA256 of message (64 characters).
func (s *Signer) Sign(message string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
