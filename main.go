package main

import (
	"atmsecurity.io/infrastructure"
	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
)

func init() {
	env.LoadEnv()
}

func main() {
	if err := infrastructure.StartServer(); err != nil {
		logger.Error("server stopped with an error", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		logger.Sync()
		panic(err)
	}
}
