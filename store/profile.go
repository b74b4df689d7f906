package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

var (
	ErrProfileNotFound = fmt.Errorf("user profile not found")
	ErrProfileExists   = fmt.Errorf("user profile already exists")
)

// Profile is the collection of user profiles and their scores
type Profile interface {
	CreateProfile(profile schema.Profile) error
	GetProfile(uid string) (*schema.Profile, error)
	IncrementScore(uid string, points int64) (int64, error)
}

// CreateProfile saves a new profile with a zero score
func (m *mongoDB) CreateProfile(profile schema.Profile) error {
	c := m.client.Database(m.database).Collection(schema.ProfileCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	profile.Score = 0
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	if _, err := c.InsertOne(ctx, profile); err != nil {
		if isDuplicateKeyError(err) {
			return ErrProfileExists
		}
		return err
	}

	return nil
}

// GetProfile returns the profile of a user
func (m *mongoDB) GetProfile(uid string) (*schema.Profile, error) {
	c := m.client.Database(m.database).Collection(schema.ProfileCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var profile schema.Profile
	if err := c.FindOne(ctx, bson.M{"uid": uid}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// IncrementScore adds points to the score of a user and returns the new score
func (m *mongoDB) IncrementScore(uid string, points int64) (int64, error) {
	c := m.client.Database(m.database).Collection(schema.ProfileCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if points < 0 {
		return 0, fmt.Errorf("score can not be decreased")
	}

	// score only ever moves through $inc
	var profile schema.Profile
	err := c.FindOneAndUpdate(ctx,
		bson.M{"uid": uid},
		bson.M{"$inc": bson.M{"score": points}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrProfileNotFound
		}
		return 0, err
	}

	return profile.Score, nil
}
