package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis_models "Roomio/models/redis"
	redis_utils "Roomio/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// PresenceTTL bounds how long a user stays online without a heartbeat.
const PresenceTTL = 2 * time.Minute

// SetOnline stores the user's presence
// Key format: "presence:{userID}"
// TTL: PresenceTTL
func (rc *RedisClient) SetOnline(ctx context.Context, userID, socketID string) error {
	p := redis_models.UserPresence{
		UserID:   userID,
		Status:   redis_models.StatusOnline,
		LastSeen: time.Now().Unix(),
		SocketID: socketID,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("error marshaling presence: %w", err)
	}
	return rc.client.Set(ctx, redis_utils.FormatPresenceKey(userID), data, PresenceTTL).Err()
}

// SetOffline removes the presence key. Callers invoke it once the user has no
// sockets left, whichever socket last refreshed the key.
func (rc *RedisClient) SetOffline(ctx context.Context, userID string) error {
	return rc.client.Del(ctx, redis_utils.FormatPresenceKey(userID)).Err()
}

// GetPresence reports offline for users without a live key.
func (rc *RedisClient) GetPresence(ctx context.Context, userID string) (*redis_models.UserPresence, error) {
	data, err := rc.client.Get(ctx, redis_utils.FormatPresenceKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &redis_models.UserPresence{UserID: userID, Status: redis_models.StatusOffline}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting presence: %w", err)
	}

	var p redis_models.UserPresence
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence: %w", err)
	}
	return &p, nil
}
