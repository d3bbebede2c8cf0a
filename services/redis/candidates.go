package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis_utils "Roomio/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// CandidateCacheTTL is how long a swipe deck stays cached.
const CandidateCacheTTL = 60 * time.Second

// CacheCandidates stores the ordered candidate ids for a user
// Key format: "candidates:{userID}"
func (rc *RedisClient) CacheCandidates(ctx context.Context, userID string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("error marshaling candidates: %w", err)
	}
	return rc.client.Set(ctx, redis_utils.FormatCandidatesKey(userID), data, CandidateCacheTTL).Err()
}

// GetCachedCandidates returns ok = false on a cache miss.
func (rc *RedisClient) GetCachedCandidates(ctx context.Context, userID string) ([]string, bool, error) {
	data, err := rc.client.Get(ctx, redis_utils.FormatCandidatesKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error getting candidates: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false, fmt.Errorf("error unmarshaling candidates: %w", err)
	}
	return ids, true, nil
}

func (rc *RedisClient) InvalidateCandidates(ctx context.Context, userID string) error {
	return rc.client.Del(ctx, redis_utils.FormatCandidatesKey(userID)).Err()
}
