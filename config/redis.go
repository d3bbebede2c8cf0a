package config

import (
	"Roomio/pkg/logger"
	"Roomio/services/redis"
)

// ConnectRedis returns nil without error when REDIS_URL is unset; callers
// then fall back to in-process rate limiting and skip presence.
func ConnectRedis(cfg *Config) (*redis.RedisClient, error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, running without Redis")
		return nil, nil
	}
	rc, err := redis.InitRedis(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Redis connection established")
	return rc, nil
}
