package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommitteeMember is one row of a committee roster. The roster is ordered
// and always replaced as a whole on edit.
type CommitteeMember struct {
	Name    string `bson:"name" json:"name"`
	Role    string `bson:"role" json:"role"`
	Contact string `bson:"contact" json:"contact"`
}

type Committee struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CommitteeName string             `bson:"committee_name" json:"committee_name"`
	Members       []CommitteeMember  `bson:"members" json:"members"`
	RulesURL      string             `bson:"rules_url,omitempty" json:"rules_url,omitempty"`
}
