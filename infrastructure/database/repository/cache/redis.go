package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	redisClient "hrms.io/infrastructure/database/connection/cache"
	"hrms.io/infrastructure/logger"
)

type RedisRepository struct {
	Client *redis.Client
}

func (redisRepo *RedisRepository) preRequest() bool {
	if redisRepo.Client == nil {
		client, err := redisClient.GetInstance()
		if err != nil {
			logger.Error("redis repository used before the client was initialised", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			return false
		}
		redisRepo.Client = client
		logger.Info("redis repository initialisation complete")
	}
	return true
}

func (redisRepo *RedisRepository) CreateEntry(ctx context.Context, key string, payload interface{}, ttl time.Duration) bool {
	if !redisRepo.preRequest() {
		return false
	}
	_, err := redisRepo.Client.Set(ctx, key, payload, ttl).Result()
	if err != nil {
		logger.Error("redis error occured while running CreateEntry", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}

	logger.Debug("redis CreateEntry completed")
	return true
}

func (redisRepo *RedisRepository) FindOne(ctx context.Context, key string) *string {
	result := redisRepo.FindOneByteArray(ctx, key)
	if result == nil {
		return nil
	}
	value := string(*result)
	return &value
}

func (redisRepo *RedisRepository) FindOneByteArray(ctx context.Context, key string) *[]byte {
	if !redisRepo.preRequest() {
		return nil
	}

	result, err := redisRepo.Client.Get(ctx, key).Bytes()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		logger.Error("redis error occured while running FindOneByteArray", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil
	}

	logger.Debug("redis FindOneByteArray completed")
	return &result
}

func (redisRepo *RedisRepository) DeleteOne(ctx context.Context, key string) bool {
	if !redisRepo.preRequest() {
		return false
	}

	result, err := redisRepo.Client.Del(ctx, key).Result()

	if err != nil {
		logger.Error("redis error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	if int(result) != 1 {
		return false
	}

	logger.Debug("redis DeleteOne completed")
	return true
}

// IncrementField bumps a counter and starts its ttl on first use.
func (redisRepo *RedisRepository) IncrementField(ctx context.Context, key string, amount int64, ttl time.Duration) int64 {
	if !redisRepo.preRequest() {
		return 0
	}

	result := redisRepo.Client.IncrBy(ctx, key, amount)
	if err := result.Err(); err != nil {
		logger.Error("redis error occured while running IncrementField", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return 0
	}
	if result.Val() == amount && ttl > 0 {
		redisRepo.Client.Expire(ctx, key, ttl)
	}
	logger.Debug("redis IncrementField completed")
	return result.Val()
}
