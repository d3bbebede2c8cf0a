package redis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	redis_utils "Roomio/services/redis/utils"
)

// TypingTTL expires a typing flag when the client never sends the stop event.
const TypingTTL = 5 * time.Second

func (rc *RedisClient) SetTyping(ctx context.Context, chatID, userID string, typing bool) error {
	key := redis_utils.FormatTypingKey(chatID, userID)
	if !typing {
		return rc.client.Del(ctx, key).Err()
	}
	return rc.client.Set(ctx, key, "1", TypingTTL).Err()
}

// TypingUsers lists the users currently typing in a chat.
func (rc *RedisClient) TypingUsers(ctx context.Context, chatID string) ([]string, error) {
	prefix := redis_utils.FormatTypingKey(chatID, "")
	var users []string
	iter := rc.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		users = append(users, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning typing keys: %w", err)
	}
	sort.Strings(users)
	return users, nil
}
