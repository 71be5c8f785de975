//go:build unit || integration

package ratelimit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"renthouse-auth/pkg/cerror"
	"renthouse-auth/pkg/config"
)

func newLimitedApp(rateLimitConfig config.RateLimitConfig, client *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: cerror.Middleware})
	app.Use(Middleware(rateLimitConfig, client))
	app.Post("/api/auth/login", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app
}
