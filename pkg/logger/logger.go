package logger

import (
	"go.uber.org/zap"
)

const ServiceName = "renthouse-auth"

// NewLogger builds the production logger every request logger derives from.
func NewLogger() (*zap.Logger, error) {
	log, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return log.With(zap.String("service", ServiceName)), nil
}
