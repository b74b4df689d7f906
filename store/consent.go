package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

type Consent interface {
	RecordConsent(r schema.ConsentRecord) error
	HasConsented(participantID string) (bool, error)
}

func (m *mongoDB) RecordConsent(r schema.ConsentRecord) error {
	c := m.client.Database(m.database).Collection(schema.ConsentRecordsCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"participant_id": r.ParticipantID}
	update := bson.M{
		"$set": bson.M{
			"consented": r.Consented,
			"ts":        time.Now(),
		},
	}
	_, err := c.UpdateOne(ctx, filter, update, opts)
	return err
}

// HasConsented returns false for participants who never recorded a consent
func (m *mongoDB) HasConsented(participantID string) (bool, error) {
	c := m.client.Database(m.database).Collection(schema.ConsentRecordsCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var r schema.ConsentRecord
	if err := c.FindOne(ctx, bson.M{"participant_id": participantID}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}

	return r.Consented, nil
}
