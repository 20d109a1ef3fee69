package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
)

// InMemoryStore is a map-backed Store used by tests and bootstrap tooling.
// It enforces the same uniqueness and TTL semantics as the Mongo backend;
// expired documents are pruned lazily on access against the Now clock.
type InMemoryStore struct {
	mu    sync.Mutex
	specs map[string]CollectionSpec
	data  map[string][]memDoc

	// Now is the clock used for TTL accounting. Tests may replace it.
	Now func() time.Time
}

type memDoc struct {
	fields     map[string]any
	insertedAt time.Time
}

func NewInMemoryStore(specs []CollectionSpec) *InMemoryStore {
	byName := make(map[string]CollectionSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	return &InMemoryStore{
		specs: byName,
		data:  make(map[string][]memDoc),
		Now:   time.Now,
	}
}

func (s *InMemoryStore) Collection(ctx context.Context, name string) (Collection, error) {
	return &memCollection{store: s, name: name, spec: s.specs[name]}, nil
}

func (s *InMemoryStore) Close(ctx context.Context) error {
	return nil
}

type memCollection struct {
	store *InMemoryStore
	name  string
	spec  CollectionSpec
}

func (c *memCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.prune()
	for _, doc := range c.store.data[c.name] {
		if matches(doc.fields, filter) {
			return decodeFields(doc.fields, out)
		}
	}
	return common.ErrNotFound
}

func (c *memCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.prune()
	var n int64
	for _, doc := range c.store.data[c.name] {
		if matches(doc.fields, filter) {
			n++
		}
	}
	return n, nil
}

func (c *memCollection) InsertOne(ctx context.Context, doc any) error {
	fields, err := encodeFields(doc)
	if err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.prune()
	if f := c.spec.UniqueField; f != "" {
		for _, existing := range c.store.data[c.name] {
			if reflect.DeepEqual(existing.fields[f], fields[f]) {
				return common.ErrDuplicateKey
			}
		}
	}

	c.store.data[c.name] = append(c.store.data[c.name], memDoc{
		fields:     fields,
		insertedAt: c.store.Now(),
	})
	return nil
}

func (c *memCollection) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.prune()
	docs := c.store.data[c.name]
	for i, doc := range docs {
		if matches(doc.fields, filter) {
			c.store.data[c.name] = append(docs[:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// prune drops documents past their TTL. Callers must hold store.mu.
func (c *memCollection) prune() {
	if c.spec.TTL <= 0 {
		return
	}

	now := c.store.Now()
	kept := c.store.data[c.name][:0]
	for _, doc := range c.store.data[c.name] {
		if now.Sub(doc.insertedAt) < c.spec.TTL {
			kept = append(kept, doc)
		}
	}
	c.store.data[c.name] = kept
}

func matches(fields map[string]any, filter Filter) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(fields[k], want) {
			return false
		}
	}
	return true
}

func encodeFields(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return fields, nil
}

func decodeFields(fields map[string]any, out any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	return json.Unmarshal(raw, out)
}
