package utils

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds a production logger when ENV=prod and a development one otherwise.
// It reads the environment directly because it runs before the config is loaded.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("ENV") == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
