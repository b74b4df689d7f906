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
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
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
	panicIfError(m.IndexReportCollection())
	panicIfError(m.IndexProfileCollection())
	panicIfError(m.IndexConsentCollection())
	panicIfError(m.IndexRevokedTokenCollection())
}

// Close disconnects the indexer's own client
func (m *MongoDBIndexer) Close() error {
	return m.Client.Disconnect(m.ctx)
}

func (m *MongoDBIndexer) IndexReportCollection() error {
	if err := m.createIndex(ReportCollection, mongo.IndexModel{
		Keys: bson.M{
			"location": "2dsphere",
		},
	}); err != nil {
		return err
	}

	return m.createIndex(ReportCollection, mongo.IndexModel{
		Keys: bson.M{
			"ts": -1,
		},
	})
}

func (m *MongoDBIndexer) IndexProfileCollection() error {
	return m.createIndex(ProfileCollection, mongo.IndexModel{
		Keys: bson.M{
			"uid": 1,
		},
		Options: options.Index().SetUnique(true),
	})
}

func (m *MongoDBIndexer) IndexConsentCollection() error {
	return m.createIndex(ConsentRecordsCollection, mongo.IndexModel{
		Keys: bson.M{
			"participant_id": 1,
		},
		Options: options.Index().SetUnique(true),
	})
}

func (m *MongoDBIndexer) IndexRevokedTokenCollection() error {
	if err := m.createIndex(RevokedTokenCollection, mongo.IndexModel{
		Keys: bson.M{
			"jti": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	// documents are removed by mongo once expire_at has passed
	return m.createIndex(RevokedTokenCollection, mongo.IndexModel{
		Keys: bson.M{
			"expire_at": 1,
		},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
}
