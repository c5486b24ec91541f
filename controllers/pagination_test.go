package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	store "github.com/societyhub/society-portal-go/store"
)

func ctxWithQuery(query string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c, w
}

func TestPageLimit(t *testing.T) {
	c, _ := ctxWithQuery("")
	assert.Equal(t, 6, pageLimit(c, 6))

	c, _ = ctxWithQuery("limit=10")
	assert.Equal(t, 10, pageLimit(c, 6))

	c, _ = ctxWithQuery("limit=0")
	assert.Equal(t, 6, pageLimit(c, 6))

	c, _ = ctxWithQuery("limit=banana")
	assert.Equal(t, 6, pageLimit(c, 6))

	c, _ = ctxWithQuery("limit=5000")
	assert.Equal(t, 100, pageLimit(c, 6))
}

func TestCursorParam(t *testing.T) {
	shape := store.Shape{Collection: "members", SortField: "room_no"}

	c, _ := ctxWithQuery("")
	after, ok := cursorParam(c, shape)
	require.True(t, ok)
	assert.Nil(t, after)

	token := store.EncodeToken(shape, store.Cursor{Value: "B-204", ID: primitive.NewObjectID()})
	c, _ = ctxWithQuery("cursor=" + token)
	after, ok = cursorParam(c, shape)
	require.True(t, ok)
	require.NotNil(t, after)
	assert.Equal(t, "B-204", after.Value)

	other := store.Shape{Collection: "events", SortField: "date", Descending: true}
	c, w := ctxWithQuery("cursor=" + token)
	_, ok = cursorParam(c, other)
	assert.False(t, ok)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "cursor does not belong to this query")
}

func TestPageResponse(t *testing.T) {
	shape := store.Shape{Collection: "members", SortField: "room_no"}
	last := &store.Cursor{Value: "B-204", ID: primitive.NewObjectID()}

	// full page mints the next cursor
	full := pageResponse("members", []string{"a", "b"}, shape, last, 2, 2)
	assert.Equal(t, true, full["has_more"])
	assert.NotEmpty(t, full["next_cursor"])

	// short page is the end of the collection
	short := pageResponse("members", []string{"a"}, shape, last, 2, 1)
	assert.Equal(t, false, short["has_more"])
	assert.Empty(t, short["next_cursor"])

	// nil items serialize as an empty list, not null
	empty := pageResponse("members", []string(nil), shape, nil, 2, 0)
	assert.Equal(t, []string{}, empty["members"])
	assert.Equal(t, false, empty["has_more"])
}
