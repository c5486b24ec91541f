package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestApplyStatusChangeToInactive(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	update := bson.M{}

	ApplyStatusChange(update, StatusActive, StatusInactive, now)

	assert.Equal(t, StatusInactive, update["status"])
	assert.Equal(t, now, update["ending_date"])
	_, touched := update["starting_date"]
	assert.False(t, touched, "going inactive must leave the starting date alone")
}

func TestApplyStatusChangeToActive(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	update := bson.M{}

	ApplyStatusChange(update, StatusInactive, StatusActive, now)

	assert.Equal(t, StatusActive, update["status"])
	assert.Equal(t, now, update["starting_date"])
	assert.Nil(t, update["ending_date"], "reactivation must clear the ending date")
}

func TestApplyStatusChangeNoOp(t *testing.T) {
	update := bson.M{}
	now := time.Now()

	ApplyStatusChange(update, StatusActive, StatusActive, now)
	assert.Empty(t, update, "same status must not stamp any dates")

	ApplyStatusChange(update, StatusActive, "", now)
	assert.Empty(t, update)
}
