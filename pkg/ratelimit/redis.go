package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"renthouse-auth/pkg/config"
)

const pingTimeout = 2 * time.Second

// NewRedisClient returns nil when rate limiting is disabled or redis is unreachable at startup.
func NewRedisClient(rateLimitConfig config.RateLimitConfig, log *zap.SugaredLogger) *redis.Client {
	if !rateLimitConfig.Enabled() {
		log.Infow("rate limiting is disabled", zap.String("reason", "redis address is not defined"))
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rateLimitConfig.RedisAddr,
		Password: rateLimitConfig.RedisPassword,
		DB:       rateLimitConfig.RedisDb,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("rate limiting is disabled", zap.String("reason", "redis ping failed"), zap.Error(err))
		_ = client.Close()
		return nil
	}

	return client
}
