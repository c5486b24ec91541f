package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FundCredit = "credit"
	FundDebit  = "debit"
)

type FundEntry struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title  string             `bson:"title" json:"title"`
	Amount float64            `bson:"amount" json:"amount"`
	Type   string             `bson:"type" json:"type"` // credit, debit
	Date   string             `bson:"date" json:"date"` // YYYY-MM-DD
}
