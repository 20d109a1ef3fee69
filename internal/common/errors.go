// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrAlreadyConnected   = errors.New("store connection already established")
	ErrNotConnected       = errors.New("store not connected")

	// Credential errors.
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("wrong password")

	// Token and session errors.
	ErrMalformedToken     = errors.New("malformed token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicateSignature = errors.New("duplicate signature")
)
