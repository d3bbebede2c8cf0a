package utils

/**
 * Key formatting for Redis (key, value) pairs. Keeps every key layout in one
 * place instead of repeating fmt.Sprintf format specs at call sites.
 */

import "fmt"

func FormatPresenceKey(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}

// FormatTypingKey with an empty userID yields the per-chat prefix used for scans.
func FormatTypingKey(chatID, userID string) string {
	return fmt.Sprintf("typing:%s:%s", chatID, userID)
}

func FormatRateLimitKey(key string, windowStart int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, windowStart)
}

func FormatCandidatesKey(userID string) string {
	return fmt.Sprintf("candidates:%s", userID)
}
