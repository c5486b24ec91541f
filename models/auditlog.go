package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLogEntry records an admin action against a member record. Entries are
// append-only and feed the member file export.
type AuditLogEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID primitive.ObjectID `bson:"member_id" json:"member_id"`
	Action   string             `bson:"action" json:"action"`
	Date     time.Time          `bson:"date" json:"date"`
	Admin    string             `bson:"admin" json:"admin"` // acting admin's email
	Type     string             `bson:"type" json:"type"`
	Details  bson.M             `bson:"details,omitempty" json:"details,omitempty"`
}
