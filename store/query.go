package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Shape identifies one distinct paginated query: collection plus ordering.
// A cursor is only meaningful relative to the shape that produced it, so
// every paginated endpoint declares exactly one Shape value.
type Shape struct {
	Collection string
	SortField  string
	Descending bool
}

func (s Shape) fingerprint() string {
	dir := "asc"
	if s.Descending {
		dir = "desc"
	}
	return fmt.Sprintf("%s/%s/%s", s.Collection, s.SortField, dir)
}

// sortDoc orders by the sort field with _id as tiebreak so pages are stable
// even when sort values collide.
func (s Shape) sortDoc() bson.D {
	dir := 1
	if s.Descending {
		dir = -1
	}
	return bson.D{{Key: s.SortField, Value: dir}, {Key: "_id", Value: dir}}
}

// afterFilter selects records strictly after the cursor in this ordering.
func (s Shape) afterFilter(c Cursor) bson.M {
	op := "$gt"
	if s.Descending {
		op = "$lt"
	}
	return bson.M{"$or": bson.A{
		bson.M{s.SortField: bson.M{op: c.Value}},
		bson.M{s.SortField: c.Value, "_id": bson.M{op: c.ID}},
	}}
}

// Cursor references the last record of a previously fetched page.
type Cursor struct {
	Value interface{}
	ID    primitive.ObjectID
}

// PageSource fetches one ordered page of at most limit records starting
// strictly after the cursor (or from the beginning when after is nil). The
// returned cursor references the last record of the page, nil for an empty
// page.
type PageSource[T any] interface {
	FetchPage(ctx context.Context, after *Cursor, limit int) ([]T, *Cursor, error)
}

// Source is the Mongo-backed PageSource.
type Source[T any] struct {
	col    *mongo.Collection
	shape  Shape
	filter bson.M
}

func NewSource[T any](col *mongo.Collection, shape Shape, filter bson.M) *Source[T] {
	return &Source[T]{col: col, shape: shape, filter: filter}
}

func (s *Source[T]) FetchPage(ctx context.Context, after *Cursor, limit int) ([]T, *Cursor, error) {
	query := bson.M{}
	for k, v := range s.filter {
		query[k] = v
	}
	if after != nil {
		af := s.shape.afterFilter(*after)
		if len(query) == 0 {
			query = af
		} else {
			query = bson.M{"$and": bson.A{query, af}}
		}
	}

	opts := options.Find().SetSort(s.shape.sortDoc()).SetLimit(int64(limit))
	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("page %s: %w", s.shape.Collection, err)
	}
	defer cursor.Close(ctx)

	var items []T
	var last *Cursor
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", s.shape.Collection, err)
		}
		items = append(items, item)

		raw := cursor.Current
		id, ok := raw.Lookup("_id").ObjectIDOK()
		if !ok {
			return nil, nil, fmt.Errorf("page %s: record without object id", s.shape.Collection)
		}
		var sortVal interface{}
		if err := raw.Lookup(s.shape.SortField).Unmarshal(&sortVal); err != nil {
			return nil, nil, fmt.Errorf("page %s: read sort key %q: %w", s.shape.Collection, s.shape.SortField, err)
		}
		last = &Cursor{Value: sortVal, ID: id}
	}
	if err := cursor.Err(); err != nil {
		return nil, nil, fmt.Errorf("page %s: %w", s.shape.Collection, err)
	}
	return items, last, nil
}
