package config

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisClient stays nil when REDIS_URL is not configured.
var RedisClient *redis.Client

func ConnectRedis(cfg *AppConfig) error {
	if cfg.RedisURL == "" {
		logrus.Warn("REDIS_URL not set, redis features disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := WithTimeout()
	defer cancel()

	res, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	RedisClient = client
	logrus.WithField("reply", res).Info("connected to Redis")
	return nil
}

func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}
