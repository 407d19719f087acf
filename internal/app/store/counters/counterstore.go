// internal/app/store/counters/counterstore.go
package counterstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store hands out per-collection numeric id sequences. Each sequence is a
// document {_id: <collection>, seq: <last id issued>}.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("counters")}
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// Next atomically increments and returns the sequence for name. The first
// call for a name returns 1.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, err
	}
	return c.Seq, nil
}

// Observe raises the sequence to at least n. Records created with a
// client-supplied numeric id call it so later server ids never collide.
func (s *Store) Observe(ctx context.Context, name string, n int64) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": n}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Current returns the last id issued for name, or 0.
func (s *Store) Current(ctx context.Context, name string) (int64, error) {
	var c counter
	err := s.c.FindOne(ctx, bson.M{"_id": name}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.Seq, nil
}
