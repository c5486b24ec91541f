package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a record does not exist or a mutation matched
// nothing. Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")

// Store is a thin adapter over the document database. All entity collections
// go through it so handlers never touch the driver directly.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Collection exposes the raw collection for ordered/limited cursor queries.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) Create(ctx context.Context, collection string, doc interface{}) (primitive.ObjectID, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", collection, err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", collection, res.InsertedID)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, collection string, id primitive.ObjectID, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get from %s: %w", collection, err)
	}
	return nil
}

// GetOne decodes the first record matching filter, ErrNotFound when none.
func (s *Store) GetOne(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get from %s: %w", collection, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string, filter bson.M, sort bson.D, out interface{}) error {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("list %s: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection string, id primitive.ObjectID, set bson.M) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection string, id primitive.ObjectID) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Replace overwrites the first record matching filter, inserting when absent.
// Used for singleton documents such as the bank details.
func (s *Store) Replace(ctx context.Context, collection string, filter bson.M, doc interface{}) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collection).ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("replace in %s: %w", collection, err)
	}
	return nil
}
