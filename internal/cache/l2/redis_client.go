package l2

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"traveltime-service/internal/config"
	"traveltime-service/internal/interfaces"
)

// NewRedisClient creates a Redis client from config and verifies connectivity
func NewRedisClient(cfg *config.RedisCacheConfig) (interfaces.RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ReadTimeout.Std())
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}
