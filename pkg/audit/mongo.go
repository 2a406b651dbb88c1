package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "order_audit"

// MongoSink stores entries in the order_audit collection.
type MongoSink struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoSink connects to uri, verifies the connection and ensures the
// (order_id, at) index exists. The caller must Close it.
func NewMongoSink(ctx context.Context, uri, db string) (*MongoSink, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("audit: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("audit: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collectionName)
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("audit: mongo index: %w", err)
	}

	return &MongoSink{client: client, col: col}, nil
}

func (s *MongoSink) Write(ctx context.Context, e Entry) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.col.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("audit: insert %s for order %d: %w", e.Event, e.OrderID, err)
	}
	return nil
}

// ForOrder returns the trail of one order, newest first.
func (s *MongoSink) ForOrder(ctx context.Context, orderID uint) ([]Entry, error) {
	cur, err := s.col.Find(ctx,
		bson.M{"order_id": orderID},
		options.Find().SetSort(bson.D{{Key: "at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("audit: find: %w", err)
	}
	defer cur.Close(ctx)

	var out []Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("audit: decode: %w", err)
	}
	return out, nil
}

func (s *MongoSink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
