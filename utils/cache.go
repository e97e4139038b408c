// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"agritrust/config"

	"github.com/go-redis/redis/v8"
)

// AuthCachePrefix namespaces validated token hashes in the auth cache.
const AuthCachePrefix = "auth:"

var (
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// ResetCacheClient throttles password-reset code issuance.
	ResetCacheClient *redis.Client
)

// InitRedis initializes all Redis clients up front so a misconfigured
// address fails at startup rather than on first request.
func InitRedis() {
	InitAuthCache()
	InitResetCache()
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitResetCache initializes the Redis client for reset-code throttling.
func InitResetCache() {
	ResetCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisResetDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ResetCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Reset Cache): %v", err)
	}
}

// GetResetCacheClient returns the Redis client for reset-code throttling.
func GetResetCacheClient() *redis.Client {
	if ResetCacheClient == nil {
		InitResetCache()
	}
	return ResetCacheClient
}
