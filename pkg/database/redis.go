package database

import (
	"context"
	"fmt"
	"time"

	"muni_assess_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the cache used for the questionnaire catalog. The
// caller decides whether a failed connection is fatal; catalog reads
// fall back to the database without it.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
