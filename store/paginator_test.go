package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeSource serves pre-built pages in order, or a fixed error.
type fakeSource struct {
	pages   [][]string
	err     error
	calls   int
	blocked chan struct{} // when set, FetchPage parks until closed
	started chan struct{}
}

func (f *fakeSource) FetchPage(ctx context.Context, after *Cursor, limit int) ([]string, *Cursor, error) {
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.blocked != nil {
		<-f.blocked
	}
	if f.err != nil {
		return nil, nil, f.err
	}
	if f.calls >= len(f.pages) {
		return nil, nil, nil
	}
	page := f.pages[f.calls]
	f.calls++
	if len(page) == 0 {
		return nil, nil, nil
	}
	return page, &Cursor{Value: page[len(page)-1], ID: primitive.NewObjectID()}, nil
}

func TestPaginatorAccumulatesPages(t *testing.T) {
	src := &fakeSource{pages: [][]string{
		{"a", "b", "c", "d", "e"},
		{"f", "g", "h", "i", "j"},
		{"k", "l", "m"},
	}}
	p := NewPaginator[string](src, 5)
	ctx := context.Background()

	require.NoError(t, p.LoadInitial(ctx))
	assert.Len(t, p.Items(), 5)
	assert.False(t, p.Exhausted())

	require.NoError(t, p.LoadMore(ctx))
	assert.Len(t, p.Items(), 10)
	assert.False(t, p.Exhausted())

	require.NoError(t, p.LoadMore(ctx))
	assert.Len(t, p.Items(), 13)
	assert.True(t, p.Exhausted(), "short page must flip exhaustion")

	// further loads are no-ops
	require.NoError(t, p.LoadMore(ctx))
	assert.Len(t, p.Items(), 13)
	assert.Equal(t, 3, src.calls)
}

func TestPaginatorEmptyPageExhausts(t *testing.T) {
	src := &fakeSource{pages: [][]string{{"a", "b"}, {}}}
	p := NewPaginator[string](src, 2)
	ctx := context.Background()

	require.NoError(t, p.LoadInitial(ctx))
	assert.False(t, p.Exhausted())

	require.NoError(t, p.LoadMore(ctx))
	assert.Len(t, p.Items(), 2)
	assert.True(t, p.Exhausted())
}

func TestPaginatorErrorLeavesStateUntouched(t *testing.T) {
	src := &fakeSource{pages: [][]string{{"a", "b", "c"}}}
	p := NewPaginator[string](src, 3)
	ctx := context.Background()

	require.NoError(t, p.LoadInitial(ctx))
	cursorBefore := p.cursor

	src.err = errors.New("connection reset")
	err := p.LoadMore(ctx)
	require.Error(t, err)
	assert.Len(t, p.Items(), 3, "failed fetch must not drop accumulated items")
	assert.Equal(t, cursorBefore, p.cursor, "failed fetch must not advance the cursor")
	assert.False(t, p.Exhausted())

	// recovery resumes from the same cursor
	src.err = nil
	src.pages = append(src.pages, []string{"d"})
	require.NoError(t, p.LoadMore(ctx))
	assert.Len(t, p.Items(), 4)
	assert.True(t, p.Exhausted())
}

func TestPaginatorRejectsOverlappingFetch(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	src := &fakeSource{pages: [][]string{{"a"}}, blocked: release, started: started}
	p := NewPaginator[string](src, 1)

	done := make(chan error, 1)
	go func() { done <- p.LoadInitial(context.Background()) }()
	<-started

	assert.ErrorIs(t, p.LoadMore(context.Background()), ErrFetchInFlight)
	assert.ErrorIs(t, p.Refresh(context.Background()), ErrFetchInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, p.Items(), 1)
}

func TestPaginatorRefreshDiscards(t *testing.T) {
	src := &fakeSource{pages: [][]string{
		{"a", "b"},
		{"c", "d"},
		{"x", "y"},
	}}
	p := NewPaginator[string](src, 2)
	ctx := context.Background()

	require.NoError(t, p.LoadInitial(ctx))
	require.NoError(t, p.LoadMore(ctx))
	assert.Len(t, p.Items(), 4)

	require.NoError(t, p.Refresh(ctx))
	assert.Equal(t, []string{"x", "y"}, p.Items(), "refresh replaces, never merges")
	assert.False(t, p.Exhausted())
}

func TestPaginatorLoadMoreBeforeInitial(t *testing.T) {
	src := &fakeSource{pages: [][]string{{"a"}}}
	p := NewPaginator[string](src, 2)

	require.NoError(t, p.LoadMore(context.Background()))
	assert.Equal(t, []string{"a"}, p.Items())
	assert.True(t, p.Exhausted())
}

func TestPaginatorDrainAll(t *testing.T) {
	src := &fakeSource{pages: [][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
		{"g"},
	}}
	p := NewPaginator[string](src, 3)

	all, err := p.DrainAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, all)
	assert.True(t, p.Exhausted())
}
