package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MaintenanceEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD
	Amount      float64            `bson:"amount" json:"amount"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	FileURL     string             `bson:"file_url,omitempty" json:"file_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
