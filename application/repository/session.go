package repository

import (
	"sync"

	"hrms.io/infrastructure/database/repository/cache"
)

var sessionCacheOnce = sync.Once{}

var sessionCacheRepository cache.RedisRepository

func SessionCacheRepo() *cache.RedisRepository {
	sessionCacheOnce.Do(func() {
		sessionCacheRepository = cache.RedisRepository{}
	})
	return &sessionCacheRepository
}
