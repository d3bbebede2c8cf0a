package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient parses a redis:// URL; a bare host:port is accepted too.
func NewRedisClient(addr string) (*RedisClient, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}
	return &RedisClient{client: redis.NewClient(opt)}, nil
}

// NewFromClient wraps an already configured client.
func NewFromClient(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// InitRedis initializes the Redis connection and checks it with a PING
func InitRedis(addr string) (*RedisClient, error) {
	rc, err := NewRedisClient(addr)
	if err != nil {
		return nil, err
	}
	if err := rc.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rc, nil
}

func (rc *RedisClient) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(rc *RedisClient) error {
	if err := rc.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %w", err)
	}
	return nil
}
