package env

import (
	"errors"
	"os"

	"atmsecurity.io/infrastructure/logger"
	"github.com/joho/godotenv"
)

// Settings is the process-wide configuration. It is populated once by LoadEnv.
var Settings = &Config{}

func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Info("error loading env variables", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	Settings = cfg
}
