package cerror

import (
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CustomError carries both what the client sees (HttpStatusCode, Message, Fields)
// and what the server logs (LogMessage, LogSeverity, LogFields).
type CustomError struct {
	HttpStatusCode int               `json:"-"`
	Message        string            `json:"message"`
	Fields         map[string]string `json:"errors,omitempty"`
	LogMessage     string            `json:"-"`
	LogSeverity    zapcore.Level     `json:"-"`
	LogFields      []zapcore.Field   `json:"-"`
}

func NewError(httpStatusCode int, logMessage string, logFields ...zap.Field) *CustomError {
	return &CustomError{
		HttpStatusCode: httpStatusCode,
		LogMessage:     logMessage,
		LogSeverity:    zapcore.ErrorLevel,
		LogFields:      logFields,
	}
}

func (cerr *CustomError) Error() string {
	if cerr.LogMessage != "" {
		return cerr.LogMessage
	}
	return cerr.ClientMessage()
}

// ClientMessage never exposes LogMessage; internal errors get a generic text.
func (cerr *CustomError) ClientMessage() string {
	if cerr.Message != "" {
		return cerr.Message
	}
	if cerr.HttpStatusCode >= http.StatusInternalServerError || cerr.HttpStatusCode == 0 {
		return MessageInternalServerError
	}
	return http.StatusText(cerr.HttpStatusCode)
}

func (cerr *CustomError) SetSeverity(severity zapcore.Level) *CustomError {
	cerr.LogSeverity = severity
	return cerr
}

func (cerr *CustomError) SetMessage(message string) *CustomError {
	cerr.Message = message
	return cerr
}

func (cerr *CustomError) SetFields(fields map[string]string) *CustomError {
	cerr.Fields = fields
	return cerr
}

// WithFields returns a copy so shared templates are never mutated.
func (cerr *CustomError) WithFields(logFields ...zap.Field) *CustomError {
	copied := *cerr
	copied.LogFields = append(append([]zapcore.Field{}, cerr.LogFields...), logFields...)
	return &copied
}

func (cerr *CustomError) Response() *CustomError {
	return &CustomError{
		Message: cerr.ClientMessage(),
		Fields:  cerr.Fields,
	}
}
