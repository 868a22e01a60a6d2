package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tasktrack/tasktrack-api/internal/query"
)

// mongoStore holds the collection operations shared by the Mongo repositories.
type mongoStore[T any] struct {
	coll *mongo.Collection
}

func (s mongoStore[T]) Count(ctx context.Context, filter query.Filter) (int64, error) {
	doc, err := compileMongoFilter(filter)
	if err != nil {
		return 0, err
	}
	return s.coll.CountDocuments(ctx, doc)
}

func (s mongoStore[T]) Find(ctx context.Context, filter query.Filter, sort query.Sort, window query.Window) ([]T, error) {
	doc, err := compileMongoFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.findMany(ctx, doc, mongoFindOptions(sort, window))
}

func (s mongoStore[T]) findMany(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s mongoStore[T]) findOne(ctx context.Context, filter bson.D) (*T, error) {
	var item T
	err := s.coll.FindOne(ctx, filter).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s mongoStore[T]) findByIDs(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return s.findMany(ctx, objectIDsFilter(ids))
}

func (s mongoStore[T]) insert(ctx context.Context, doc *T) error {
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return err
	}
	return nil
}

func (s mongoStore[T]) replace(ctx context.Context, id primitive.ObjectID, doc *T) (bool, error) {
	res, err := s.coll.ReplaceOne(ctx, objectIDFilter(id), doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s mongoStore[T]) delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, objectIDFilter(id))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
