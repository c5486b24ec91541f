package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	FullName     string             `bson:"full_name" json:"full_name"`
	PhoneNumber  string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Role         string             `bson:"role" json:"role"` // always "admin"
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type Member struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email           string             `bson:"email" json:"email"`
	PasswordHash    string             `bson:"password_hash" json:"-"`
	FullName        string             `bson:"full_name" json:"full_name"`
	PhoneNumber     string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	ApartmentNumber string             `bson:"apartment_number,omitempty" json:"apartment_number,omitempty"`
	RoomNo          string             `bson:"room_no" json:"room_no"`
	Role            string             `bson:"role" json:"role"`     // always "member"
	Status          string             `bson:"status" json:"status"` // active, inactive
	StartingDate    *time.Time         `bson:"starting_date,omitempty" json:"starting_date,omitempty"`
	EndingDate      *time.Time         `bson:"ending_date,omitempty" json:"ending_date,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// ApplyStatusChange adds the date-pair bookkeeping for a status transition to
// an update document. Going inactive stamps the ending date and leaves the
// starting date alone; going active restamps the starting date and clears the
// ending date. A no-op when the status is unchanged.
func ApplyStatusChange(update bson.M, prev, next string, now time.Time) {
	if next == "" || next == prev {
		return
	}
	update["status"] = next
	switch next {
	case StatusInactive:
		update["ending_date"] = now
	case StatusActive:
		update["starting_date"] = now
		update["ending_date"] = nil
	}
}
