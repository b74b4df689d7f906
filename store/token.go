package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

// TokenRevocation keeps signed out tokens until they expire
type TokenRevocation interface {
	RevokeToken(id string, expireAt time.Time) error
	IsTokenRevoked(id string) (bool, error)
}

func (m *mongoDB) RevokeToken(id string, expireAt time.Time) error {
	c := m.client.Database(m.database).Collection(schema.RevokedTokenCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if _, err := c.InsertOne(ctx, schema.RevokedToken{
		ID:       id,
		ExpireAt: expireAt,
	}); err != nil {
		// signing out twice is fine
		if isDuplicateKeyError(err) {
			return nil
		}
		return err
	}

	return nil
}

func (m *mongoDB) IsTokenRevoked(id string) (bool, error) {
	c := m.client.Database(m.database).Collection(schema.RevokedTokenCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	count, err := c.CountDocuments(ctx, bson.M{"jti": id})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
