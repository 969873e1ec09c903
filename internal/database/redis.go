package database

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Daily quotas fall back to process-local counters.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// RedisAvailable reports whether the Redis client is usable right now.
func RedisAvailable() bool {
	if Redis == nil {
		return false
	}
	return Redis.Ping(Ctx).Err() == nil
}

// IncrQuota increments a quota counter and sets its expiry on first use.
// Returns the counter value after the increment.
func IncrQuota(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := Redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		Redis.Expire(ctx, key, ttl)
	}
	return count, nil
}

// DecrQuota releases n previously reserved quota units.
func DecrQuota(ctx context.Context, key string, n int64) error {
	return Redis.DecrBy(ctx, key, n).Err()
}

// Caching
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, data, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return Redis.Del(Ctx, keys...).Err()
}
