package docstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
)

// mongoConnected guards the process-wide single-connection rule: a second
// ConnectMongo call is rejected before dialing so that misconfiguration
// surfaces early instead of silently reusing a connection.
var mongoConnected atomic.Bool

// MongoStore is the MongoDB-backed document store.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	specs  map[string]CollectionSpec

	mu    sync.Mutex
	ready map[string]bool
}

// ConnectMongo dials MongoDB, verifies the connection, and returns a store
// serving the given database. Index creation for the declared specs is
// deferred until a collection is first accessed.
//
// Only one connection per process is allowed; a second call returns
// common.ErrAlreadyConnected until the first store is closed.
func ConnectMongo(ctx context.Context, uri, database string, specs []CollectionSpec) (*MongoStore, error) {
	if !mongoConnected.CompareAndSwap(false, true) {
		return nil, common.ErrAlreadyConnected
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		mongoConnected.Store(false)
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		mongoConnected.Store(false)
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	byName := make(map[string]CollectionSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
		specs:  byName,
		ready:  make(map[string]bool),
	}, nil
}

// Collection returns a handle to the named collection, ensuring the declared
// indexes exist on first access.
func (s *MongoStore) Collection(ctx context.Context, name string) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready[name] {
		if spec, ok := s.specs[name]; ok {
			if err := s.ensureIndexes(ctx, spec); err != nil {
				return nil, err
			}
		}
		s.ready[name] = true
	}

	return &mongoCollection{coll: s.db.Collection(name)}, nil
}

// Close disconnects the client and releases the process-wide connection slot.
func (s *MongoStore) Close(ctx context.Context) error {
	defer mongoConnected.Store(false)

	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context, spec CollectionSpec) error {
	var models []mongo.IndexModel

	if spec.UniqueField != "" {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: spec.UniqueField, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}

	if spec.TTL > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: insertedAtField, Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(spec.TTL.Seconds())),
		})
	}

	if len(models) == 0 {
		return nil
	}

	if _, err := s.db.Collection(spec.Name).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	err := c.coll.FindOne(ctx, bson.M(filter)).Decode(out)
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return common.ErrNotFound
	}
	return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
}

func (c *mongoCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, bson.M(filter))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return n, nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) error {
	stamped, err := stampInsertedAt(doc)
	if err != nil {
		return err
	}

	if _, err := c.coll.InsertOne(ctx, stamped); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrDuplicateKey
		}
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M(filter))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return res.DeletedCount, nil
}

// insertedAtField is the bookkeeping timestamp the store stamps on every
// inserted document. TTL indexes are declared on it so that expiry counts
// from insertion, invisible to callers.
const insertedAtField = "insertedAt"

func stampInsertedAt(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	m[insertedAtField] = time.Now().UTC()
	return m, nil
}
