package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisMaxRetries = 10
	redisRetryDelay = 3 * time.Second
)

// NewRedisClient connects to Redis, retrying while the server comes up.
func NewRedisClient(ctx context.Context, env *Env, log *zap.Logger) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	}
	log.Info("Connecting to Redis", zap.String("address", opts.Addr), zap.Int("db", opts.DB))

	var lastErr error
	for attempt := 1; attempt <= redisMaxRetries; attempt++ {
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.Info("Connected to Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		_ = client.Close()
		lastErr = err
		log.Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", redisMaxRetries),
			zap.Error(err),
		)

		if attempt < redisMaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(redisRetryDelay):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", redisMaxRetries, lastErr)
}
