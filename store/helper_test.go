package store

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

const (
	testConnURI = "mongodb://127.0.0.1:27017/?compressors=disabled"
)

// mongoTestSuite connects to a local mongo and gives every suite a clean,
// indexed database. Suites are skipped when no mongo is listening.
type mongoTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func (s *mongoTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI).SetServerSelectionTimeout(2 * time.Second)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	if err := mongoClient.Ping(context.Background(), nil); err != nil {
		s.T().Skipf("mongo is not reachable: %s", err)
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}

	indexer := schema.NewMongoDBIndexer(s.connURI, s.testDBName)
	indexer.IndexAll()
	_ = indexer.Close()
}

func (s *mongoTestSuite) TearDownSuite() {
	if s.mongoClient == nil {
		return
	}
	_ = s.CleanMongoDB()
	_ = s.mongoClient.Disconnect(context.Background())
}

// CleanMongoDB drop the whole test mongodb
func (s *mongoTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}
