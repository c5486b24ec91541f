package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Announcement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	FileURL     string             `bson:"file_url,omitempty" json:"file_url,omitempty"`
	Date        time.Time          `bson:"date" json:"date"` // server time at creation
}
