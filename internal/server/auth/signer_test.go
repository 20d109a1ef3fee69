package auth

import (
	"encoding/hex"
	"testing"
)

func TestSigner_Deterministic(t *testing.T) {
	t.Parallel()

	s := NewSigner("secret")
	a := s.Sign("header.payload")
	b := s.Sign("header.payload")
	if a != b {
		t.Fatalf("same message produced different signatures: %s vs %s", a, b)
	}
}

func TestSigner_OutputLengthAndEncoding(t *testing.T) {
	t.Parallel()

	sig := NewSigner("secret").Sign("msg")
	if len(sig) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(sig))
	}
	if _, err := hex.DecodeString(sig); err != nil {
		t.Fatalf("signature is not valid hex: %v", err)
	}
}

func TestSigner_KnownAnswer(t *testing.T) {
	t.Parallel()

	// RFC 4231 test case 2: HMAC-SHA-256("Jefe", "what do ya want for nothing?").
	got := NewSigner("Jefe").Sign("what do ya want for nothing?")
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	if got != want {
		t.Fatalf("known-answer mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestSigner_SecretAndMessageChangeOutput(t *testing.T) {
	t.Parallel()

	base := NewSigner("secret").Sign("msg")
	if NewSigner("secres").Sign("msg") == base {
		t.Fatalf("changing the secret did not change the signature")
	}
	if NewSigner("secret").Sign("msh") == base {
		t.Fatalf("changing the message did not change the signature")
	}
}
