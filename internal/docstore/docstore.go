// Package docstore models the document-collection service the server
// persists into: named collections supporting find-by-filter, insert,
// delete-by-filter, plus declarative uniqueness and TTL constraints.
// Collections and their indexes are created lazily on first access.
//
// Two backends are provided: MongoStore for production and InMemoryStore
// for tests and bootstrap tooling.
package docstore

import (
	"context"
	"time"
)

// Filter selects documents by exact field match.
type Filter map[string]any

// CollectionSpec declares the constraints of a named collection. The zero
// value of UniqueField or TTL means the corresponding constraint is absent.
//
// TTL is measured from document insertion: the storage layer removes a
// document TTL after it was inserted, regardless of any timestamp fields
// the document carries.
type CollectionSpec struct {
	Name        string
	UniqueField string
	TTL         time.Duration
}

// Collection is a handle to a named document collection.
type Collection interface {
	// FindOne decodes the first document matching filter into out.
	// Returns common.ErrNotFound when no document matches.
	FindOne(ctx context.Context, filter Filter, out any) error

	// Count returns the number of documents matching filter.
	Count(ctx context.Context, filter Filter) (int64, error)

	// InsertOne stores a document. Returns common.ErrDuplicateKey when the
	// collection's uniqueness constraint is violated.
	InsertOne(ctx context.Context, doc any) error

	// DeleteOne removes the first document matching filter and reports how
	// many documents were removed (0 or 1). A zero count is not an error.
	DeleteOne(ctx context.Context, filter Filter) (int64, error)
}

// Store is a connected document store. Implementations hand out collection
// handles and ensure the declared constraints exist before first use.
type Store interface {
	Collection(ctx context.Context, name string) (Collection, error)
	Close(ctx context.Context) error
}
