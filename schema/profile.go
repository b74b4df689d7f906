package schema

import "time"

const (
	ProfileCollection = "user_profiles"
)

// Profile - user profile data kept next to the reports
type Profile struct {
	UID       string    `json:"uid" bson:"uid"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Age       *int      `json:"age,omitempty" bson:"age,omitempty"`
	Score     int64     `json:"score" bson:"score"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
