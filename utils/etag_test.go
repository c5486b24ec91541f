package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	tag := GenerateETag(id, at)
	assert.True(t, strings.HasPrefix(tag, `"`))
	assert.True(t, strings.HasSuffix(tag, `"`))

	assert.Equal(t, tag, GenerateETag(id, at), "same inputs must produce the same tag")
	assert.NotEqual(t, tag, GenerateETag(id, at.Add(time.Second)))
	assert.NotEqual(t, tag, GenerateETag(primitive.NewObjectID(), at))
}
