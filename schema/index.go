package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexDonationCollection())
	panicIfError(m.IndexRequestCollection())
}

// Close releases the indexer's own connection
func (m *MongoDBIndexer) Close() error {
	return m.Client.Disconnect(m.ctx)
}

// listings are always listed newest first
func (m *MongoDBIndexer) indexListingCollection(collection string) error {
	if err := m.createIndex(collection, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}); err != nil {
		return err
	}

	return m.createIndex(collection, mongo.IndexModel{
		Keys: bson.M{
			"category": 1,
		},
	})
}

func (m *MongoDBIndexer) IndexDonationCollection() error {
	return m.indexListingCollection(DonationCollection)
}

func (m *MongoDBIndexer) IndexRequestCollection() error {
	if err := m.indexListingCollection(RequestCollection); err != nil {
		return err
	}

	return m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"urgency": 1,
		},
	})
}
