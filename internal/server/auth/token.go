package auth

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
)

// Header is the first token segment: algorithm metadata.
type Header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Payload is the second token segment. ExpiresAt is epoch milliseconds.
type Payload struct {
	Issuer    string `json:"issuer"`
	ExpiresAt int64  `json:"expiresAt"`
	Subject   string `json:"subject"`
}

// SessionStore is the session-lifetime store the token service records
// issued signatures in.
type SessionStore interface {
	Insert(ctx context.Context, signature string, expireAt time.Time) error
	Exists(ctx context.Context, signature string) (bool, error)
	Delete(ctx context.Context, signature string) error
}

// Service issues and validates bearer tokens of the form
// base64url(header).base64url(payload).hex(signature). Only the signature
// is persisted; the session store is the sole source of truth for validity.
type Service struct {
	signer   *Signer
	sessions SessionStore
	issuer   string
	lifetime time.Duration
	now      func() time.Time
}

func NewService(signer *Signer, sessions SessionStore, issuer string, lifetime time.Duration) *Service {
	return &Service{
		signer:   signer,
		sessions: sessions,
		issuer:   issuer,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Issue creates a token for the given subject and records its signature as
// an active session expiring after the configured lifetime.
func (s *Service) Issue(ctx context.Context, email string) (string, error) {
	expireAt := s.now().Add(s.lifetime)

	header, err := json.Marshal(Header{Alg: "HS256", Typ: "token"})
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(Payload{
		Issuer:    s.issuer,
		ExpiresAt: expireAt.UnixMilli(),
		Subject:   email,
	})
	if err != nil {
		return "", err
	}

	signed := encodeSegment(header) + "." + encodeSegment(payload)
	signature := s.signer.Sign(signed)

	if err := s.sessions.Insert(ctx, signature, expireAt); err != nil {
		return "", err
	}

	return signed + "." + signature, nil
}

// Validate reports whether the token currently represents a valid session.
//
// A signature mismatch returns false without touching storage, so forged
// tokens cannot probe the session store. On a match the session record must
// be present and the payload expiry must still be in the future.
func (s *Service) Validate(ctx context.Context, token string) (bool, error) {
	signed, payloadSeg, signature, err := splitToken(token)
	if err != nil {
		return false, err
	}

	if !s.signatureMatches(signed, signature) {
		return false, nil
	}

	ok, err := s.sessions.Exists(ctx, signature)
	if err != nil || !ok {
		return false, err
	}

	payload, err := decodePayload(payloadSeg)
	if err != nil {
		return false, err
	}
	if payload.ExpiresAt <= s.now().UnixMilli() {
		return false, nil
	}

	return true, nil
}

// Revoke logs the session out. A signature mismatch is common.ErrUnauthorized;
// revoking an already-absent session is success.
func (s *Service) Revoke(ctx context.Context, token string) error {
	signed, _, signature, err := splitToken(token)
	if err != nil {
		return err
	}

	if !s.signatureMatches(signed, signature) {
		return common.ErrUnauthorized
	}

	return s.sessions.Delete(ctx, signature)
}

func (s *Service) signatureMatches(signed, signature string) bool {
	expected := s.signer.Sign(signed)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// splitToken breaks a token into its signed prefix ("header.payload"), the
// payload segment, and the signature. Fewer than three segments is
// common.ErrMalformedToken; extra segments are ignored and left to fail the
// signature check.
func splitToken(token string) (signed, payloadSeg, signature string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) < 3 {
		return "", "", "", common.ErrMalformedToken
	}
	return parts[0] + "." + parts[1], parts[1], parts[2], nil
}

func decodePayload(segment string) (*Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, common.ErrMalformedToken
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, common.ErrMalformedToken
	}
	return &payload, nil
}

func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}
