package redis

import (
	"context"
	"fmt"
	"time"

	"material_market_backend/internal/config"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const dialTimeout = 5 * time.Second

// NewClient connects and pings the configured Redis server.
func NewClient(ctx context.Context, cfg *config.Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(dialCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis (ping failed): %w", err)
	}
	return client, nil
}

// Provide returns a client only when FAVORITES_BACKEND=redis.
func Provide(cfg *config.Config, logger *zap.Logger) (*goredis.Client, func(), error) {
	if cfg.FavoritesBackend != config.BackendRedis {
		return nil, func() {}, nil
	}
	client, err := NewClient(context.Background(), cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Connected to redis", zap.String("addr", cfg.RedisAddr))
	return client, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Error closing redis client", zap.Error(err))
		}
	}, nil
}
