package store

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrCursorMismatch is returned when a cursor token is presented against a
// query shape other than the one that produced it.
var ErrCursorMismatch = errors.New("cursor does not belong to this query")

type cursorToken struct {
	Shape string      `json:"s"`
	Value interface{} `json:"v"`
	ID    string      `json:"id"`
}

// EncodeToken serializes a cursor into an opaque token bound to its shape.
func EncodeToken(shape Shape, c Cursor) string {
	b, _ := json.Marshal(cursorToken{
		Shape: shape.fingerprint(),
		Value: c.Value,
		ID:    c.ID.Hex(),
	})
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeToken parses a token and verifies it was minted for shape.
func DecodeToken(shape Shape, token string) (*Cursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor token: %w", err)
	}
	var t cursorToken
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("invalid cursor token: %w", err)
	}
	if t.Shape != shape.fingerprint() {
		return nil, ErrCursorMismatch
	}
	id, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor token: %w", err)
	}
	return &Cursor{Value: t.Value, ID: id}, nil
}
