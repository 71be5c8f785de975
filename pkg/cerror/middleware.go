package cerror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"renthouse-auth/pkg/logger"
)

// Middleware is the fiber ErrorHandler of the application.
func Middleware(ctx *fiber.Ctx, err error) error {
	cerr := toCustomError(err)

	log := logger.FromContext(ctx.Context()).Desugar()
	if len(cerr.LogFields) > 0 {
		log = log.With(cerr.LogFields...)
	}
	log.Log(cerr.LogSeverity, cerr.LogMessage, zap.Int("httpStatus", cerr.HttpStatusCode))

	return ctx.
		Status(cerr.HttpStatusCode).
		JSON(cerr.Response())
}

func toCustomError(err error) *CustomError {
	var cerr *CustomError
	if errors.As(err, &cerr) {
		return cerr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		severity := zapcore.WarnLevel
		if fiberErr.Code >= fiber.StatusInternalServerError {
			severity = zapcore.ErrorLevel
		}
		return &CustomError{
			HttpStatusCode: fiberErr.Code,
			Message:        fiberErr.Message,
			LogMessage:     fiberErr.Message,
			LogSeverity:    severity,
		}
	}

	return &CustomError{
		HttpStatusCode: fiber.StatusInternalServerError,
		LogMessage:     "unhandled error",
		LogSeverity:    zapcore.ErrorLevel,
		LogFields: []zap.Field{
			zap.Error(err),
		},
	}
}
