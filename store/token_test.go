package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	shape := Shape{Collection: "events", SortField: "date", Descending: true}
	c := Cursor{Value: "2026-03-01", ID: primitive.NewObjectID()}

	token := EncodeToken(shape, c)
	got, err := DecodeToken(shape, token)
	require.NoError(t, err)
	assert.Equal(t, c.Value, got.Value)
	assert.Equal(t, c.ID, got.ID)
}

func TestTokenRejectsOtherShape(t *testing.T) {
	events := Shape{Collection: "events", SortField: "date", Descending: true}
	funds := Shape{Collection: "funds", SortField: "date", Descending: true}
	token := EncodeToken(events, Cursor{Value: "2026-03-01", ID: primitive.NewObjectID()})

	_, err := DecodeToken(funds, token)
	assert.ErrorIs(t, err, ErrCursorMismatch)

	// same collection, different ordering, is still a different query
	ascending := Shape{Collection: "events", SortField: "date"}
	_, err = DecodeToken(ascending, token)
	assert.ErrorIs(t, err, ErrCursorMismatch)
}

func TestTokenRejectsGarbage(t *testing.T) {
	shape := Shape{Collection: "members", SortField: "room_no"}

	_, err := DecodeToken(shape, "not base64!!")
	assert.Error(t, err)

	_, err = DecodeToken(shape, "aGVsbG8")
	assert.Error(t, err)
}
