// Package cryptox implements the password key-derivation primitive used for
// credential storage.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

// derivedKeyBytes is the raw output size of the derivation. The hex form
// stored in credential records is twice as long.
const derivedKeyBytes = 128

// ErrInvalidIterations is returned when the iteration count is not positive.
var ErrInvalidIterations = errors.New("iteration count must be positive")

// DeriveKey derives a password key with PBKDF2-HMAC-SHA256 and returns it
// hex-encoded (256 characters).
//
// The pepper is a process-wide secret concatenated with the password before
// derivation, so a leaked credential collection alone cannot be brute-forced
// unless the pepper also leaks. The salt is the per-user hex string exactly
// as stored in the credential record; its bytes are fed to the KDF as-is.
//
// DeriveKey is deterministic: the same inputs always produce the same output.
func DeriveKey(password, pepper, salt string, iterations int) (string, error) {
	if iterations <= 0 {
		return "", ErrInvalidIterations
	}

	key := pbkdf2.Key([]byte(password+pepper), []byte(salt), iterations, derivedKeyBytes, sha256.New)

	return hex.EncodeToString(key), nil
}
