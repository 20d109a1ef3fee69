package sessions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
	"github.com/sdpatel1986/ng-dragon-medical/internal/docstore"
)

func newTestStore(t *testing.T) (*Store, *docstore.InMemoryStore) {
	t.Helper()
	db := docstore.NewInMemoryStore([]docstore.CollectionSpec{Spec()})
	return NewStore(db), db
}

func testSignature(c byte) string {
	return strings.Repeat(string(c), 64)
}

func TestInsertAndExists(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sig := testSignature('a')
	if err := s.Insert(ctx, sig, time.Now().Add(Lifetime)); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	ok, err := s.Exists(ctx, sig)
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !ok {
		t.Fatalf("inserted signature not found")
	}

	ok, err = s.Exists(ctx, testSignature('b'))
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if ok {
		t.Fatalf("absent signature reported as present")
	}
}

func TestInsert_DuplicateSignature(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sig := testSignature('a')
	expire := time.Now().Add(Lifetime)

	if err := s.Insert(ctx, sig, expire); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := s.Insert(ctx, sig, expire); !errors.Is(err, common.ErrDuplicateSignature) {
		t.Fatalf("expected ErrDuplicateSignature, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sig := testSignature('a')
	if err := s.Insert(ctx, sig, time.Now().Add(Lifetime)); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	if err := s.Delete(ctx, sig); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	ok, err := s.Exists(ctx, sig)
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if ok {
		t.Fatalf("deleted signature still present")
	}

	// Deleting an absent signature is success at this boundary.
	if err := s.Delete(ctx, sig); err != nil {
		t.Fatalf("second Delete should succeed, got: %v", err)
	}
}

func TestTTL_ExpiresFromInsertion(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := start
	db.Now = func() time.Time { return now }

	sig := testSignature('a')
	if err := s.Insert(ctx, sig, start.Add(Lifetime)); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	now = start.Add(Lifetime - time.Second)
	ok, err := s.Exists(ctx, sig)
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !ok {
		t.Fatalf("session expired before its TTL")
	}

	now = start.Add(Lifetime)
	ok, err = s.Exists(ctx, sig)
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if ok {
		t.Fatalf("session survived past its TTL")
	}
}
