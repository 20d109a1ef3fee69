package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
)

type testDoc struct {
	Name  string `json:"name"`
	Group string `json:"group"`
}

func newTestStore(t *testing.T) *InMemoryStore {
	t.Helper()
	return NewInMemoryStore([]CollectionSpec{
		{Name: "plain"},
		{Name: "unique", UniqueField: "name"},
		{Name: "expiring", UniqueField: "name", TTL: time.Hour},
	})
}

func TestInMemory_InsertAndFindOne(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coll, err := s.Collection(ctx, "plain")
	require.NoError(t, err)

	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "a", Group: "g1"}))
	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "b", Group: "g2"}))

	var got testDoc
	require.NoError(t, coll.FindOne(ctx, Filter{"name": "b"}, &got))
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, "g2", got.Group)
}

func TestInMemory_FindOne_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coll, err := s.Collection(ctx, "plain")
	require.NoError(t, err)

	var got testDoc
	err = coll.FindOne(ctx, Filter{"name": "missing"}, &got)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemory_UniqueConstraint(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coll, err := s.Collection(ctx, "unique")
	require.NoError(t, err)

	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "a", Group: "g1"}))

	err = coll.InsertOne(ctx, testDoc{Name: "a", Group: "other"})
	assert.ErrorIs(t, err, common.ErrDuplicateKey)

	// A different key value is still accepted.
	assert.NoError(t, coll.InsertOne(ctx, testDoc{Name: "b", Group: "g1"}))
}

func TestInMemory_DeleteOne(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coll, err := s.Collection(ctx, "unique")
	require.NoError(t, err)

	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "a"}))

	n, err := coll.DeleteOne(ctx, Filter{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Deleting again matches nothing but is not an error.
	n, err = coll.DeleteOne(ctx, Filter{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// The unique slot is free again after deletion.
	assert.NoError(t, coll.InsertOne(ctx, testDoc{Name: "a"}))
}

func TestInMemory_Count(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coll, err := s.Collection(ctx, "plain")
	require.NoError(t, err)

	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "a", Group: "g"}))
	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "b", Group: "g"}))
	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "c", Group: "other"}))

	n, err := coll.Count(ctx, Filter{"group": "g"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = coll.Count(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestInMemory_TTLExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := start
	s.Now = func() time.Time { return now }

	coll, err := s.Collection(ctx, "expiring")
	require.NoError(t, err)

	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "a"}))

	// Just before the TTL boundary the document is still visible.
	now = start.Add(time.Hour - time.Second)
	n, err := coll.Count(ctx, Filter{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// At the boundary it is gone.
	now = start.Add(time.Hour)
	n, err = coll.Count(ctx, Filter{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	var got testDoc
	err = coll.FindOne(ctx, Filter{"name": "a"}, &got)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemory_TTLFreesUniqueSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := start
	s.Now = func() time.Time { return now }

	coll, err := s.Collection(ctx, "expiring")
	require.NoError(t, err)

	require.NoError(t, coll.InsertOne(ctx, testDoc{Name: "a"}))
	require.True(t, errors.Is(coll.InsertOne(ctx, testDoc{Name: "a"}), common.ErrDuplicateKey))

	now = start.Add(2 * time.Hour)
	assert.NoError(t, coll.InsertOne(ctx, testDoc{Name: "a"}))
}
