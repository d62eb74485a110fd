package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is the collection holding all entries
const MongoCollection = "kv_entries"

type mongoEntry struct {
	ID        string    `bson:"_id"`
	Namespace string    `bson:"namespace"`
	Key       string    `bson:"key"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Mongo stores each key as one document with _id "<namespace>:<key>"
type Mongo struct {
	coll      *mongo.Collection
	namespace string
}

// NewMongo returns a MongoDB-backed store
func NewMongo(coll *mongo.Collection, namespace string) *Mongo {
	return &Mongo{coll: coll, namespace: namespace}
}

func (m *Mongo) id(key string) string {
	return m.namespace + ":" + key
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, error) {
	var entry mongoEntry
	err := m.coll.FindOne(ctx, bson.M{"_id": m.id(key)}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return entry.Value, nil
}

func (m *Mongo) Set(ctx context.Context, key string, value []byte) error {
	entry := mongoEntry{
		ID:        m.id(key),
		Namespace: m.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": m.id(key)})
	return err
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.coll.Database().Client().Ping(ctx, nil)
}
