package redis

type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusOffline PresenceStatus = "offline"
)

type UserPresence struct {
	UserID   string         `json:"user_id"`
	Status   PresenceStatus `json:"status"`
	LastSeen int64          `json:"last_seen"` // Unix timestamp
	SocketID string         `json:"socket_id"`
}
