package store

import (
	"context"
	"errors"
	"sync"
)

// ErrFetchInFlight is returned when a fetch is requested while another is
// still outstanding on the same paginator. The request is dropped, never
// queued, so overlapping completions cannot append duplicate pages.
var ErrFetchInFlight = errors.New("fetch already in flight")

// Paginator accumulates an ordered collection page by page. It tracks the
// cursor of the last retrieved record and reports exhaustion once a page
// comes back shorter than the requested size (a zero-length page included).
//
// A failed fetch leaves the accumulated list and cursor untouched.
type Paginator[T any] struct {
	src      PageSource[T]
	pageSize int

	gate      sync.Mutex // one in-flight fetch per instance
	items     []T
	cursor    *Cursor
	exhausted bool
	loaded    bool
}

func NewPaginator[T any](src PageSource[T], pageSize int) *Paginator[T] {
	return &Paginator[T]{src: src, pageSize: pageSize}
}

// LoadInitial fetches the first page. On success the accumulated list is
// replaced with the page contents.
func (p *Paginator[T]) LoadInitial(ctx context.Context) error {
	if !p.gate.TryLock() {
		return ErrFetchInFlight
	}
	defer p.gate.Unlock()
	return p.fetchInitial(ctx)
}

// LoadMore fetches the page strictly after the current cursor and appends it.
// A no-op once exhausted; delegates to the initial fetch when nothing has
// been loaded yet.
func (p *Paginator[T]) LoadMore(ctx context.Context) error {
	if !p.gate.TryLock() {
		return ErrFetchInFlight
	}
	defer p.gate.Unlock()

	if !p.loaded {
		return p.fetchInitial(ctx)
	}
	if p.exhausted {
		return nil
	}

	items, last, err := p.src.FetchPage(ctx, p.cursor, p.pageSize)
	if err != nil {
		return err
	}
	p.items = append(p.items, items...)
	if last != nil {
		p.cursor = last
	}
	p.exhausted = len(items) < p.pageSize
	return nil
}

// Refresh discards the accumulated list and cursor, then re-runs the initial
// fetch. Mutations always refresh rather than patching the list in place:
// inserts and deletes can shift the ordering in ways a stale cursor cannot
// reconcile.
func (p *Paginator[T]) Refresh(ctx context.Context) error {
	if !p.gate.TryLock() {
		return ErrFetchInFlight
	}
	defer p.gate.Unlock()

	p.items = nil
	p.cursor = nil
	p.exhausted = false
	p.loaded = false
	return p.fetchInitial(ctx)
}

func (p *Paginator[T]) fetchInitial(ctx context.Context) error {
	items, last, err := p.src.FetchPage(ctx, nil, p.pageSize)
	if err != nil {
		return err
	}
	p.items = items
	p.cursor = last
	p.exhausted = len(items) < p.pageSize
	p.loaded = true
	return nil
}

// DrainAll refreshes and then keeps loading until the source is exhausted,
// returning the full accumulated list.
func (p *Paginator[T]) DrainAll(ctx context.Context) ([]T, error) {
	if err := p.Refresh(ctx); err != nil {
		return nil, err
	}
	for !p.Exhausted() {
		if err := p.LoadMore(ctx); err != nil {
			return nil, err
		}
	}
	return p.Items(), nil
}

// Items returns the accumulated records. The slice is shared; callers must
// not mutate it.
func (p *Paginator[T]) Items() []T { return p.items }

func (p *Paginator[T]) Exhausted() bool { return p.exhausted }
