// Package logger builds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

// New returns a console logger in dev, JSON otherwise.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "dev" {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	return zap.NewProduction()
}
