// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"podbooker/config"

	"github.com/go-redis/redis/v8"
)

// TokenCacheClient is the Redis client backing the host OAuth token store.
var TokenCacheClient *redis.Client

// InitTokenCache initializes the Redis client for host token storage.
func InitTokenCache() {
	TokenCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTokenDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := TokenCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Token Store): %v", err)
	}
}

// GetTokenCacheClient returns the Redis client for host token storage.
func GetTokenCacheClient() *redis.Client {
	if TokenCacheClient == nil {
		InitTokenCache()
	}
	return TokenCacheClient
}
