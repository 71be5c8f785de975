package cerror

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zapcore"
)

const (
	MessageInternalServerError = "Internal server error"
	MessageMalformedBody       = "Malformed request body"
	MessageValidationFailed    = "Validation failed"
	MessageInvalidCredentials  = "Invalid email or password"
	MessageNoToken             = "No token provided"
	MessageInvalidToken        = "Invalid token"
	MessageUserNotFound        = "User not found"
	MessageForbidden           = "Forbidden"
	MessageTooManyRequests     = "Too many requests"
)

// Templates below are shared. Use WithFields to attach request specific log fields.
var (
	ErrorBadRequest = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        MessageMalformedBody,
		LogMessage:     "malformed request body or query parameter",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidCredentials = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        MessageInvalidCredentials,
		LogMessage:     "invalid email or password",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorMissingToken = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        MessageNoToken,
		LogMessage:     "bearer token is missing",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidToken = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        MessageInvalidToken,
		LogMessage:     "bearer token is not valid",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorForbidden = &CustomError{
		HttpStatusCode: fiber.StatusForbidden,
		Message:        MessageForbidden,
		LogMessage:     "user type is not allowed to access resource",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorUserNotFound = &CustomError{
		HttpStatusCode: fiber.StatusNotFound,
		Message:        MessageUserNotFound,
		LogMessage:     "user not found",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorGenerateToken = &CustomError{
		HttpStatusCode: fiber.StatusInternalServerError,
		LogMessage:     "error occurred while generate session token",
		LogSeverity:    zapcore.ErrorLevel,
	}
)
