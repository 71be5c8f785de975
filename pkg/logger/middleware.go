package logger

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	ContextKey                = "logger"
	EventFinishedSuccessfully = "event successfully finished"
)

// Middleware must run after the requestid middleware so every request logger carries the id.
func Middleware(logger *zap.SugaredLogger) func(ctx *fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		requestLogger := logger.With(
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
		)

		requestId := ctx.GetRespHeader(fiber.HeaderXRequestID)
		if requestId != "" {
			requestLogger = requestLogger.With(zap.String("requestId", requestId))
		}

		ctx.Locals(ContextKey, requestLogger)
		return ctx.Next()
	}
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	var (
		logger *zap.SugaredLogger
		isOk   bool
	)

	logger, isOk = ctx.Value(ContextKey).(*zap.SugaredLogger)
	if !isOk {
		l, _ := zap.NewProduction()
		logger = l.Sugar()
	}

	var lambdaCtx *lambdacontext.LambdaContext
	lambdaCtx, isOk = lambdacontext.FromContext(ctx)
	if isOk {
		logger = logger.With(zap.String("awsRequestId", lambdaCtx.AwsRequestID))
	}

	return logger
}

// With stores the enriched logger back on the request so later calls to FromContext see it.
func With(ctx *fiber.Ctx, fields ...interface{}) *zap.SugaredLogger {
	log := FromContext(ctx.Context()).With(fields...)
	ctx.Locals(ContextKey, log)
	return log
}

func InjectContext(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, log) //nolint:staticcheck
}
