// Package logging builds the root zap logger and scrubs secrets from
// anything that ends up in log output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the root logger. Production environments get JSON output
// at info level; everything else gets the development console encoder
// at debug level.
func New(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("crewlog"), nil
}
