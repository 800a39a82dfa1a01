package client

import (
	"context"
	"time"

	"assetflow/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient 連接 Redis
type RedisClient struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(logger *zap.Logger, config *config.Configuration) (*RedisClient, func(), error) {
	r := redis.NewClient(&redis.Options{
		Addr:         config.Redis.Addr(),
		Password:     config.Redis.Password,
		DB:           config.Redis.DB,
		PoolSize:     config.Redis.PoolSize,
		DialTimeout:  config.Redis.DialTimeout(),
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), config.Redis.DialTimeout())
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to Redis", zap.Error(err))
		_ = r.Close()
		return nil, nil, err
	}
	logger.Info("Connected to Redis", zap.String("addr", config.Redis.Addr()))

	redisClient := &RedisClient{client: r, logger: logger}
	cleanup := func() {
		logger.Info("closing the Redis resources")
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close Redis client", zap.Error(err))
		}
	}
	return redisClient, cleanup, nil
}

// Close 關閉 Redis 連線
func (redisClient *RedisClient) Close() error {
	return redisClient.client.Close()
}

// Client 回傳 Redis 連線
func (redisClient *RedisClient) Client() *redis.Client {
	return redisClient.client
}
