package session

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"renthouse-auth/pkg/cerror"
	"renthouse-auth/pkg/jwt_generator"
	"renthouse-auth/pkg/logger"
)

const (
	ClaimsContextKey = "sessionClaims"
	bearerPrefix     = "Bearer "
)

// BearerToken returns the token of an "Authorization: Bearer <token>" header, or "".
func BearerToken(ctx *fiber.Ctx) string {
	header := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// Middleware rejects requests without a live session token and exposes the claims to later handlers.
func Middleware(jwtGenerator jwt_generator.JwtGenerator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := BearerToken(ctx)
		if token == "" {
			return cerror.ErrorMissingToken
		}

		claims, err := jwtGenerator.VerifyToken(token)
		if err != nil {
			return cerror.ErrorInvalidToken.WithFields(zap.Error(err))
		}

		ctx.Locals(ClaimsContextKey, claims)
		logger.With(ctx, zap.String("userId", claims.UserId))

		return ctx.Next()
	}
}

func ClaimsFromCtx(ctx *fiber.Ctx) (*jwt_generator.Claims, bool) {
	claims, ok := ctx.Locals(ClaimsContextKey).(*jwt_generator.Claims)
	return claims, ok && claims != nil
}

// RequireRole must be mounted after Middleware.
func RequireRole(userTypes ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(userTypes))
	for _, userType := range userTypes {
		allowed[userType] = struct{}{}
	}

	return func(ctx *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(ctx)
		if !ok {
			return cerror.ErrorMissingToken
		}

		if _, isAllowed := allowed[claims.UserType]; !isAllowed {
			return cerror.ErrorForbidden.WithFields(
				zap.String("userType", claims.UserType),
				zap.String("path", ctx.Path()),
			)
		}

		return ctx.Next()
	}
}
