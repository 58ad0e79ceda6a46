package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ownerField = "user_id"

// ownedCollection restricts every read and write on a collection to a single
// owner. The owner constraint is applied last so callers cannot override it.
type ownedCollection struct {
	coll *mongo.Collection
}

func (c ownedCollection) scoped(ownerID string, filter bson.M) bson.M {
	out := make(bson.M, len(filter)+1)
	for k, v := range filter {
		out[k] = v
	}
	out[ownerField] = ownerID
	return out
}

// findOne decodes the first matching document into out. It reports false when
// nothing matched.
func (c ownedCollection) findOne(ctx context.Context, ownerID string, filter bson.M, out interface{}) (bool, error) {
	err := c.coll.FindOne(ctx, c.scoped(ownerID, filter)).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c ownedCollection) find(ctx context.Context, ownerID string, filter bson.M, opts *options.FindOptions, out interface{}) error {
	cursor, err := c.coll.Find(ctx, c.scoped(ownerID, filter), opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return nil
}

func (c ownedCollection) exists(ctx context.Context, ownerID string, filter bson.M) (bool, error) {
	n, err := c.coll.CountDocuments(ctx, c.scoped(ownerID, filter), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c ownedCollection) insert(ctx context.Context, doc interface{}) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

// replace swaps the owner's document with the given ID for doc. It reports
// false when no document matched.
func (c ownedCollection) replace(ctx context.Context, ownerID, id string, doc interface{}) (bool, error) {
	result, err := c.coll.ReplaceOne(ctx, c.scoped(ownerID, bson.M{"_id": id}), doc)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// delete removes the owner's document with the given ID. It reports false when
// no document matched.
func (c ownedCollection) delete(ctx context.Context, ownerID, id string) (bool, error) {
	result, err := c.coll.DeleteOne(ctx, c.scoped(ownerID, bson.M{"_id": id}))
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// pageOptions returns find options sorted newest first with optional paging.
func pageOptions(limit, offset int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	return opts
}
