package cache

import (
	"context"
	"sync"
	"time"

	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
	"github.com/redis/go-redis/v9"
)

type RedisConnection struct {
	Client *redis.Client
}

var (
	instance  *RedisConnection
	redisOnce sync.Once
	redisErr  error
)

func connectRedis() (*RedisConnection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     env.Settings.RedisAddr,
		Password: env.Settings.RedisPassword,
		DB:       0,
		PoolSize: 10,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("could not connect to redis", logger.LoggerOptions{Key: "error", Data: err})
		return nil, err
	}
	logger.Info("connected to redis successfully")
	return &RedisConnection{Client: client}, nil
}

// GetInstance returns the shared redis connection, dialling on first use.
func GetInstance() (*RedisConnection, error) {
	redisOnce.Do(func() {
		instance, redisErr = connectRedis()
	})
	return instance, redisErr
}

func ConnectToCache() error {
	_, err := GetInstance()
	return err
}

func CleanUp() {
	if instance != nil && instance.Client != nil {
		instance.Client.Close()
	}
}
