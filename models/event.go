package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD, list sort key
	Time      string             `bson:"time,omitempty" json:"time,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Banner    string             `bson:"banner,omitempty" json:"banner,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
