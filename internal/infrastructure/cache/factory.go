package cache

import (
	"context"
	"fmt"
	"time"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewPlanCatalogCache returns a Redis-backed cache when Redis is enabled and
// reachable, and an in-memory cache otherwise. The returned close func is
// always safe to call.
func NewPlanCatalogCache(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (appenrollment.PlanCatalogCache, func() error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	if !cfg.Enabled {
		logger.Info("Plan catalog cache using process memory", zap.Duration("ttl", cfg.PlanTTL))
		return NewInMemoryPlanCatalogCache(cfg.PlanTTL), noop
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory plan cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryPlanCatalogCache(cfg.PlanTTL), noop
	}

	logger.Info("Plan catalog cache using Redis",
		zap.String("addr", cfg.Addr()),
		zap.Duration("ttl", cfg.PlanTTL),
	)
	return NewRedisPlanCatalogCache(client, cfg.PlanTTL), client.Close
}
