package ratelimit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"renthouse-auth/pkg/cerror"
	"renthouse-auth/pkg/config"
	"renthouse-auth/pkg/logger"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
)

// tokenBucketScript refills one token per interval up to capacity and takes one token per call.
// It returns {allowed, remaining, retryAfterMs}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

var ErrorTooManyRequests = &cerror.CustomError{
	HttpStatusCode: fiber.StatusTooManyRequests,
	Message:        cerror.MessageTooManyRequests,
	LogMessage:     "rate limit exceeded",
	LogSeverity:    zapcore.WarnLevel,
}

// Middleware limits requests per client ip and path. A nil client disables it and
// redis failures let the request through.
func Middleware(rateLimitConfig config.RateLimitConfig, client *redis.Client) fiber.Handler {
	if client == nil {
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	capacity := rateLimitConfig.Capacity
	if capacity <= 0 {
		capacity = config.DefaultRateLimitCapacity
	}
	interval := rateLimitConfig.RefillInterval
	if interval <= 0 {
		interval = config.DefaultRateLimitInterval
	}
	ttl := time.Duration(capacity+1) * interval
	ttlSeconds := int64(math.Ceil(ttl.Seconds()))

	return func(ctx *fiber.Ctx) error {
		key := buildKey(rateLimitConfig.Prefix, ctx)

		result, err := tokenBucketScript.Run(
			ctx.Context(),
			client,
			[]string{key},
			time.Now().UnixMilli(),
			capacity,
			interval.Milliseconds(),
			ttlSeconds,
		).Int64Slice()
		if err != nil || len(result) != 3 {
			logger.FromContext(ctx.Context()).Warnw(
				"rate limiter is unavailable, request is let through",
				zap.String("key", key),
				zap.Error(err),
			)
			return ctx.Next()
		}

		allowed, remaining, retryAfterMs := result[0] == 1, result[1], result[2]

		ctx.Set(HeaderRateLimitLimit, strconv.Itoa(capacity))
		ctx.Set(HeaderRateLimitRemaining, strconv.FormatInt(remaining, 10))

		if !allowed {
			retryAfter := int64(math.Ceil(float64(retryAfterMs) / 1000.0))
			if retryAfter < 1 {
				retryAfter = 1
			}
			ctx.Set(fiber.HeaderRetryAfter, strconv.FormatInt(retryAfter, 10))
			return ErrorTooManyRequests.WithFields(zap.String("key", key))
		}

		return ctx.Next()
	}
}

func buildKey(prefix string, ctx *fiber.Ctx) string {
	ip := ctx.IP()
	if ip == "" {
		ip = "unknown"
	}
	return strings.Join([]string{prefix, "ip", ip, "route", fmt.Sprintf("%s %s", ctx.Method(), ctx.Path())}, ":")
}
