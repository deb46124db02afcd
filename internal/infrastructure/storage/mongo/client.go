// Package mongo implements the domain repositories on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	collSpareparts = "spareparts"
	collCustomers  = "customers"
	collVehicles   = "vehicles"
	collEstimates  = "estimates"
	collWorkOrders = "work_orders"
	collSnapshots  = "revenue_snapshots"
	collSequences  = "sequences"
)

// Store wraps the MongoDB connection and hands out repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the MongoDB connection and verifies it with a ping.
// Monetary and quantity values are stored as Decimal128 and entity IDs as
// strings; see the codecs in codec.go.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetRegistry(newRegistry())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies the connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// EnsureIndexes creates the indexes the repositories rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	// Uniqueness on code and plate applies to live documents only:
	// soft-deleted entries keep their values, and a freed code is
	// reallocated to the next created item.
	liveOnly := bson.D{{Key: "deletion_mark", Value: false}}

	indexes := map[string][]mongo.IndexModel{
		collSpareparts: {
			{Keys: bson.D{{Key: "code", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(liveOnly)},
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "brand", Value: 1}}},
		},
		collVehicles: {
			{Keys: bson.D{{Key: "plate_number", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(liveOnly)},
			{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		},
		collEstimates: {
			{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
		collWorkOrders: {
			{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	return nil
}

// WithTransaction runs fn inside one MongoDB transaction. Repository
// calls made with the callback's context join the session, so all reads
// see a consistent snapshot and all writes commit or abort together.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// NextSequence implements numerator.Sequencer on a counters collection.
// The atomic $inc upsert guarantees no number is handed out twice.
func (s *Store) Next(ctx context.Context, key string) (int64, error) {
	var out struct {
		Value int64 `bson:"value"`
	}

	err := s.db.Collection(collSequences).FindOneAndUpdate(
		ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("increment sequence %s: %w", key, err)
	}
	return out.Value, nil
}
