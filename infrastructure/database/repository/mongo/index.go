package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"hrms.io/infrastructure/logger"
)

var ErrCollectionUnavailable = errors.New("mongo collection is not connected")

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	if repo.Model == nil {
		return nil, ErrCollectionUnavailable
	}
	parsed := payload.ParseModel()
	_, err := repo.Model.InsertOne(ctx, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	created, ok := parsed.(*T)
	if !ok {
		return &payload, nil
	}
	return created, nil
}

func (repo *MongoRepository[T]) FindOneByFilter(ctx context.Context, filter map[string]interface{}) (*T, error) {
	if repo.Model == nil {
		return nil, ErrCollectionUnavailable
	}
	var result T
	err := repo.Model.FindOne(ctx, bson.M(filter)).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindMany(ctx context.Context, filter map[string]interface{}, opts *FindOptions) (*[]T, error) {
	if repo.Model == nil {
		return nil, ErrCollectionUnavailable
	}
	findOptions := options.Find()
	if opts != nil {
		if opts.Projection != nil {
			findOptions.SetProjection(*opts.Projection)
		}
		if opts.Sort != nil {
			findOptions.SetSort(*opts.Sort)
		}
		if opts.Skip != nil {
			findOptions.SetSkip(*opts.Skip)
		}
		if opts.Limit != nil {
			findOptions.SetLimit(*opts.Limit)
		}
	}
	cursor, err := repo.Model.Find(ctx, bson.M(filter), findOptions)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error("mongo error occured while decoding FindMany results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(ctx context.Context, filter map[string]interface{}) (int64, error) {
	if repo.Model == nil {
		return 0, ErrCollectionUnavailable
	}
	count, err := repo.Model.CountDocuments(ctx, bson.M(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return 0, err
	}
	return count, nil
}
