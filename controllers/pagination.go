package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	store "github.com/societyhub/society-portal-go/store"
)

// pageLimit reads ?limit, clamped to something a list view would ask for.
func pageLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	if n > 100 {
		return 100
	}
	return n
}

// cursorParam decodes ?cursor against the endpoint's query shape. A token
// minted by a different shape is rejected outright. Returns ok=false after
// writing the error response.
func cursorParam(c *gin.Context, shape store.Shape) (*store.Cursor, bool) {
	token := c.Query("cursor")
	if token == "" {
		return nil, true
	}
	after, err := store.DecodeToken(shape, token)
	if err != nil {
		if errors.Is(err, store.ErrCursorMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cursor does not belong to this query"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
		}
		return nil, false
	}
	return after, true
}

// pageResponse assembles the standard paginated list payload. Exhaustion is
// a page shorter than requested; a full page mints the next cursor token.
func pageResponse[T any](key string, items []T, shape store.Shape, last *store.Cursor, limit, got int) gin.H {
	if items == nil {
		items = []T{}
	}
	hasMore := got == limit
	next := ""
	if hasMore && last != nil {
		next = store.EncodeToken(shape, *last)
	}
	return gin.H{key: items, "next_cursor": next, "has_more": hasMore}
}
