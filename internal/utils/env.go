package utils

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv loads .env (or the given files) into the process environment.
// Variables already set are not overridden.
func LoadEnv(logger *zap.Logger, files ...string) {
	err := godotenv.Load(files...)
	switch {
	case err == nil:
		logger.Info("ENV file loaded successfully", zap.Strings("files", files))
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("ENV file not found, using environment and defaults")
	default:
		logger.Warn("ENV file failed to load, using environment and defaults", zap.Error(err))
	}
}
