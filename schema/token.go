package schema

import "time"

const (
	RevokedTokenCollection = "revokedTokens"
)

// RevokedToken is a signed out JWT. It is kept until the token would have
// expired anyway.
type RevokedToken struct {
	ID       string    `bson:"jti"`
	ExpireAt time.Time `bson:"expire_at"`
}
