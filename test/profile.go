package test

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfileID identifies the single profile used by CRUD tests.
const ProfileID = "7839e7a9-ea50-465b-a346-beddd48be2c8"

// Profile is the document upserted by CRUD tests.
type Profile struct {
	ID        string `bson:"id"`
	FullName  string `bson:"fullName"`
	Text      string `bson:"text"`
	Timestamp string `bson:"timestamp"`
}

// NewProfile returns the CRUD test profile stamped with the specified time.
func NewProfile(now time.Time) *Profile {
	return &Profile{
		ID:        ProfileID,
		FullName:  "Kim Scott",
		Text:      "MongoDb: cool. bonsai cool text to analyze and search.",
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}
}

// Filter returns a filter for the profile's id field.
func (p *Profile) Filter() bson.D {
	return bson.D{{Key: "id", Value: p.ID}}
}
