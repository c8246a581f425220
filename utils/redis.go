package utils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client
func InitRedis() error {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisClient = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Redis returns the shared client; InitRedis must have been called
func Redis() *redis.Client {
	return redisClient
}

// SetWithTTL stores a value with expiry
func SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	return redisClient.Set(ctx, key, value, ttl).Err()
}

// GetAndDelete fetches a key and removes it atomically. Returns the value
// and whether the key existed.
func GetAndDelete(ctx context.Context, key string) (string, bool, error) {
	val, err := redisClient.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetNX sets a key only if it does not exist; returns true if it was set.
// Used as a replay guard for date-bound login signatures.
func SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return redisClient.SetNX(ctx, key, value, ttl).Result()
}
