// Package credentials owns the "users" collection: it creates user
// credentials and verifies email/password pairs against them.
package credentials

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
	"github.com/sdpatel1986/ng-dragon-medical/internal/cryptox"
	"github.com/sdpatel1986/ng-dragon-medical/internal/docstore"
	"github.com/sdpatel1986/ng-dragon-medical/internal/logging"
)

const (
	collectionName = "users"

	// saltBytes random bytes per user, stored hex-encoded inside the
	// composite hash string.
	saltBytes = 128

	// hashIterations is the work factor for newly created credentials.
	// Verification always uses the iteration count stored with the record,
	// so raising this value does not invalidate existing users.
	hashIterations = 10000
)

// Credential is the stored form of a user record.
type Credential struct {
	Email string `bson:"email" json:"email"`

	// HashedPassword is the composite string "derivedKeyHex:saltHex:iterations".
	HashedPassword string `bson:"hashedPassword" json:"hashedPassword"`
}

// Spec declares the collection and its uniqueness constraint for the
// document store.
func Spec() docstore.CollectionSpec {
	return docstore.CollectionSpec{Name: collectionName, UniqueField: "email"}
}

// Store creates and verifies user credentials.
type Store struct {
	db     docstore.Store
	pepper string
	logger logging.Logger
}

func NewStore(db docstore.Store, pepper string, logger logging.Logger) *Store {
	return &Store{
		db:     db,
		pepper: pepper,
		logger: logger.With("module", "credentials"),
	}
}

// CreateUser registers a new credential: a fresh random salt, a key derived
// with the current work factor, and the composite hash persisted under a
// unique email. A duplicate email surfaces as common.ErrEmailAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, email, password string) error {
	salt, err := common.MakeRandHexString(saltBytes)
	if err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}

	key, err := cryptox.DeriveKey(password, s.pepper, salt, hashIterations)
	if err != nil {
		return fmt.Errorf("deriving key: %w", err)
	}

	coll, err := s.db.Collection(ctx, collectionName)
	if err != nil {
		return err
	}

	cred := Credential{
		Email:          email,
		HashedPassword: fmt.Sprintf("%s:%s:%d", key, salt, hashIterations),
	}

	if err := coll.InsertOne(ctx, cred); err != nil {
		if errors.Is(err, common.ErrDuplicateKey) {
			return common.ErrEmailAlreadyExists
		}
		return err
	}

	s.logger.Info(ctx, "user created", "email", email)
	return nil
}

// Verify checks an email/password pair against the stored credential.
// The key is re-derived with the salt and iteration count recorded at
// creation time and compared in constant time.
func (s *Store) Verify(ctx context.Context, email, password string) error {
	coll, err := s.db.Collection(ctx, collectionName)
	if err != nil {
		return err
	}

	var cred Credential
	if err := coll.FindOne(ctx, docstore.Filter{"email": email}, &cred); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return err
	}

	storedKey, salt, iterations, err := splitHash(cred.HashedPassword)
	if err != nil {
		return err
	}

	key, err := cryptox.DeriveKey(password, s.pepper, salt, iterations)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(key), []byte(storedKey)) != 1 {
		return common.ErrWrongPassword
	}
	return nil
}

func splitHash(composite string) (key, salt string, iterations int, err error) {
	parts := strings.Split(composite, ":")
	if len(parts) != 3 {
		return "", "", 0, fmt.Errorf("malformed credential record")
	}

	iterations, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", "", 0, fmt.Errorf("malformed credential record: %v", err)
	}

	return parts[0], parts[1], iterations, nil
}
