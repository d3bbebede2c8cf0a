package handlers

import (
	"context"
	"time"

	"Roomio/pkg/logger"
	"Roomio/services"
	"Roomio/services/redis"
	socketio_types "Roomio/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

const eventTimeout = 5 * time.Second

// HandleConnected joins the user's personal room and every chat room they
// belong to, then marks them online.
func HandleConnected(client *socket.Socket, userID string, chats *services.ChatService,
	redisClient *redis.RedisClient, sio *socketio_types.SocketServer) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	sio.AddConnection(userID, client)
	client.Join(socket.Room(services.UserRoom(userID)))

	chatIDs, err := chats.ChatIDs(ctx, userID)
	if err != nil {
		logger.Error("Failed to load chats for socket", "user_id", userID, "error", err)
	}
	for _, id := range chatIDs {
		client.Join(socket.Room(services.ChatRoom(id)))
	}

	if redisClient != nil {
		if err := redisClient.SetOnline(ctx, userID, string(client.Id())); err != nil {
			logger.Warn("Failed to set presence", "user_id", userID, "error", err)
		}
	}
	logger.Info("Socket connected", "user_id", userID, "socket_id", client.Id(), "chats", len(chatIDs))
}

// HandleHeartbeat refreshes the presence TTL of a long-lived connection.
func HandleHeartbeat(client *socket.Socket, userID string, redisClient *redis.RedisClient) func(args ...interface{}) {
	return func(args ...interface{}) {
		if redisClient == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if err := redisClient.SetOnline(ctx, userID, string(client.Id())); err != nil {
			logger.Warn("Failed to refresh presence", "user_id", userID, "error", err)
		}
	}
}

// HandleDisconnecting forgets the socket and marks the user offline once
// their last socket is gone.
func HandleDisconnecting(client *socket.Socket, userID string, redisClient *redis.RedisClient,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		var presence offlineSetter
		if redisClient != nil {
			presence = redisClient
		}
		remaining := releaseSocket(userID, client.Id(), sio, presence)
		logger.Info("Socket disconnecting", "user_id", userID, "socket_id", client.Id(), "remaining", remaining)
	}
}

type offlineSetter interface {
	SetOffline(ctx context.Context, userID string) error
}

// releaseSocket drops socketID from the registry and clears presence when it
// was the user's last socket. It returns the number of sockets left.
func releaseSocket(userID string, socketID socket.SocketId, sio *socketio_types.SocketServer, presence offlineSetter) int {
	remaining := sio.RemoveConnection(userID, socketID)
	if remaining == 0 && presence != nil {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if err := presence.SetOffline(ctx, userID); err != nil {
			logger.Warn("Failed to clear presence", "user_id", userID, "error", err)
		}
	}
	return remaining
}
