// Package sessions owns the "session" collection: the set of signatures
// that currently denote active sessions.
//
// Presence is the whole contract. A signature in the collection means the
// session is active; absence means not logged in, whether the session was
// never issued, revoked, or expired by the storage TTL.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
	"github.com/sdpatel1986/ng-dragon-medical/internal/docstore"
)

const collectionName = "session"

// Lifetime is how long a session record survives after insertion before
// the storage layer removes it.
const Lifetime = time.Hour

// Session is the stored record. The signature doubles as the session's
// identity; there is no separate session ID.
type Session struct {
	Signature string    `bson:"signature" json:"signature"`
	Expire    time.Time `bson:"expire" json:"expire"`
}

// Spec declares the collection, its uniqueness constraint, and the TTL
// from insertion.
func Spec() docstore.CollectionSpec {
	return docstore.CollectionSpec{Name: collectionName, UniqueField: "signature", TTL: Lifetime}
}

// Store tracks active session signatures.
type Store struct {
	db docstore.Store
}

func NewStore(db docstore.Store) *Store {
	return &Store{db: db}
}

// Insert records an active session. Signature collisions are
// cryptographically near-impossible but are surfaced as
// common.ErrDuplicateSignature rather than silently overwritten.
func (s *Store) Insert(ctx context.Context, signature string, expireAt time.Time) error {
	coll, err := s.db.Collection(ctx, collectionName)
	if err != nil {
		return err
	}

	sess := Session{Signature: signature, Expire: expireAt}
	if err := coll.InsertOne(ctx, sess); err != nil {
		if errors.Is(err, common.ErrDuplicateKey) {
			return common.ErrDuplicateSignature
		}
		return err
	}
	return nil
}

// Exists reports whether a record with the signature is currently present.
func (s *Store) Exists(ctx context.Context, signature string) (bool, error) {
	coll, err := s.db.Collection(ctx, collectionName)
	if err != nil {
		return false, err
	}

	n, err := coll.Count(ctx, docstore.Filter{"signature": signature})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a session. Deleting an absent or already-expired signature
// is success: logout is idempotent at this boundary.
func (s *Store) Delete(ctx context.Context, signature string) error {
	coll, err := s.db.Collection(ctx, collectionName)
	if err != nil {
		return err
	}

	_, err = coll.DeleteOne(ctx, docstore.Filter{"signature": signature})
	return err
}
