package redis

import (
	"context"
	"fmt"
	"time"

	redis_utils "Roomio/services/redis/utils"
)

// Allow counts a hit in the current fixed window and reports whether the
// caller is still within limit.
func (rc *RedisClient) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	windowStart := time.Now().Truncate(window).Unix()
	redisKey := redis_utils.FormatRateLimitKey(key, windowStart)

	pipe := rc.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("error incrementing rate limit: %w", err)
	}
	return incr.Val() <= int64(limit), nil
}
