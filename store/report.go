package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

var (
	ErrReportNotFound = fmt.Errorf("dump report not found")
)

// DumpReport is the collection of reported dump sites
type DumpReport interface {
	AddReport(report schema.Report) (*schema.Report, error)
	GetReport(id primitive.ObjectID) (*schema.Report, error)
	ListReports() ([]schema.Report, error)
	NearbyReports(distInMeter int, loc schema.Location) ([]schema.Report, error)
	DeleteReport(id primitive.ObjectID) error
	CountReports() (int64, error)
}

// AddReport inserts a report and returns it with the id assigned by mongo
func (m *mongoDB) AddReport(report schema.Report) (*schema.Report, error) {
	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	report.ID = primitive.NilObjectID
	result, err := c.InsertOne(ctx, report)
	if err != nil {
		return nil, err
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = id
	}

	log.WithFields(log.Fields{
		"prefix":    mongoLogPrefix,
		"report_id": report.ID.Hex(),
	}).Debug("dump report added")

	return &report, nil
}

// GetReport returns a single report
func (m *mongoDB) GetReport(id primitive.ObjectID) (*schema.Report, error) {
	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var report schema.Report
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}

// ListReports returns every report which carries a location, newest first
func (m *mongoDB) ListReports() ([]schema.Report, error) {
	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cursor, err := c.Find(ctx, matchHasLocation(), options.Find().SetSort(bson.D{{Key: "ts", Value: -1}}))
	if err != nil {
		return nil, err
	}

	reports := make([]schema.Report, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}

// NearbyReports returns reports within distInMeter of a location, newest first
func (m *mongoDB) NearbyReports(distInMeter int, loc schema.Location) ([]schema.Report, error) {
	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	pipeline := []bson.M{
		aggStageGeoProximity(distInMeter, loc),
		aggStageHasLocation(),
		aggStageNewestFirst(),
	}

	cursor, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	reports := make([]schema.Report, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}

// DeleteReport removes exactly one report
func (m *mongoDB) DeleteReport(id primitive.ObjectID) error {
	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrReportNotFound
	}

	return nil
}

// CountReports returns the number of open dump reports
func (m *mongoDB) CountReports() (int64, error) {
	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return c.CountDocuments(ctx, bson.M{})
}
