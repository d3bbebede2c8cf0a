package redis

// TypingIndicator is broadcast to the other participant of a chat.
type TypingIndicator struct {
	ChatID string `json:"chat_id"`
	UserID string `json:"user_id"`
	Typing bool   `json:"typing"`
}
