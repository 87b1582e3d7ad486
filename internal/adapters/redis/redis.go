package redis

import (
	"context"

	"gavel-auction-service/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client sized from configuration. Pool and
// timeout settings come from config so deployments can tune them without a
// rebuild.
func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.IOTimeout,
		WriteTimeout: cfg.Redis.IOTimeout,
		MaxRetries:   3,
	})
}

// PingRedis tests the Redis connection within the configured dial timeout
func PingRedis(client *redis.Client, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()

	return client.Ping(ctx).Err()
}
