package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"hrms.io/infrastructure/env"
	"hrms.io/infrastructure/logger"
)

var (
	Client *redis.Client
	once   sync.Once
)

func connectRedis() {
	opt := &redis.Options{
		Addr:     env.String("REDIS_ADDR", "localhost:6379"),
		Password: env.String("REDIS_PASSWORD", ""),
		DB:       env.Int("REDIS_DB", 0),
		PoolSize: env.Int("REDIS_POOL_SIZE", 10),
	}
	Client = redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Ping(ctx).Err(); err != nil {
		logger.Warning("redis did not answer ping", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	logger.Info("connected to redis successfully")
}

func ConnectToCache() {
	once.Do(connectRedis)
}

func GetInstance() (*redis.Client, error) {
	if Client == nil {
		return nil, errors.New("redis client has not been initialised")
	}
	return Client, nil
}

func CleanUp() {
	if Client != nil {
		Client.Close()
	}
}
