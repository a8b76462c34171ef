package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/community-aid/schema"
)

var (
	ErrListingNotFound = fmt.Errorf("listing not found")
)

// objectID turns a client supplied id into a mongo id. Malformed ids can
// never match a stored listing, so they are reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrListingNotFound
	}
	return oid, nil
}

func listAll[T any](ctx context.Context, c *mongo.Collection) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := c.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("list %s with error: %s", c.Name(), err)
		return nil, err
	}

	items := make([]T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("list %s gets %d records", c.Name(), len(items))
	return items, nil
}

func findByID[T any](ctx context.Context, c *mongo.Collection, id string) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item T
	if err := c.FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	return &item, nil
}

// insert stores a new listing. The id, creation time and display date are
// always assigned here regardless of what the caller submitted.
func insert[T any, PT schema.Record[T]](ctx context.Context, c *mongo.Collection, item T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	common := PT(&item).Common()
	common.ID = ""
	common.PostedDate = schema.PostedJustNow
	common.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := c.InsertOne(ctx, item)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("insert into %s with error: %s", c.Name(), err)
		return nil, err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	common.ID = oid.Hex()

	return &item, nil
}

// replace overwrites every mutable field of a listing. The id and the
// creation time are kept from the stored record, and so is the display date
// when none is submitted.
func replace[T any, PT schema.Record[T]](ctx context.Context, c *mongo.Collection, id string, item T) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	common := PT(&item).Common()
	common.ID = ""
	common.CreatedAt = time.Time{}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated T
	if err := c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": item}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		log.WithFields(log.Fields{
			"prefix":     mongoLogPrefix,
			"collection": c.Name(),
			"id":         id,
			"error":      err,
		}).Error("update listing")
		return nil, err
	}

	return &updated, nil
}

func remove(ctx context.Context, c *mongo.Collection, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrListingNotFound
	}

	return nil
}
