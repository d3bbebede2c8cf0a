package handlers

import (
	"context"

	redis_models "Roomio/models/redis"
	"Roomio/pkg/apperror"
	"Roomio/pkg/logger"
	"Roomio/services"
	"Roomio/services/redis"
	socketio_utils "Roomio/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// reply answers through the ack callback when the client passed one and
// falls back to an "error" event for failures.
func reply(client *socket.Socket, ack socketio_utils.Ack, payload gin.H, err error) {
	if err != nil {
		body := gin.H{"success": false, "error": apperror.PublicMessage(err)}
		if ack != nil {
			ack([]interface{}{body}, nil)
			return
		}
		client.Emit("error", body)
		return
	}
	if ack != nil {
		payload["success"] = true
		ack([]interface{}{payload}, nil)
	}
}

// HandleJoinChat subscribes the socket to a chat it participates in, for
// chats created after the connection was established.
func HandleJoinChat(client *socket.Socket, userID string, chats *services.ChatService) func(args ...interface{}) {
	return func(args ...interface{}) {
		args, ack := socketio_utils.SplitAck(args)
		chatID, err := socketio_utils.StringArg(args, 0, "chatId")
		if err != nil {
			reply(client, ack, nil, apperror.Validation("chatId is required"))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if _, err := chats.Authorize(ctx, userID, chatID); err != nil {
			reply(client, ack, nil, err)
			return
		}
		client.Join(socket.Room(services.ChatRoom(chatID)))
		reply(client, ack, gin.H{"chatId": chatID}, nil)
	}
}

// HandleSendMessage stores a message. ChatService broadcasts new_message to
// the chat room, sender included.
func HandleSendMessage(client *socket.Socket, userID string, chats *services.ChatService) func(args ...interface{}) {
	return func(args ...interface{}) {
		args, ack := socketio_utils.SplitAck(args)
		chatID, err := socketio_utils.StringArg(args, 0, "chatId")
		if err != nil {
			reply(client, ack, nil, apperror.Validation("chatId is required"))
			return
		}
		content, err := socketio_utils.StringArg(args, 1, "content")
		if err != nil {
			reply(client, ack, nil, apperror.Validation("content is required"))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		msg, err := chats.SendMessage(ctx, userID, chatID, content)
		if err != nil {
			reply(client, ack, nil, err)
			return
		}
		reply(client, ack, gin.H{"message": msg}, nil)
	}
}

// HandleTyping records the typing flag and relays it to the other sockets
// in the chat room.
func HandleTyping(client *socket.Socket, userID string, chats *services.ChatService,
	redisClient *redis.RedisClient) func(args ...interface{}) {
	return func(args ...interface{}) {
		args, ack := socketio_utils.SplitAck(args)
		chatID, err := socketio_utils.StringArg(args, 0, "chatId")
		if err != nil {
			reply(client, ack, nil, apperror.Validation("chatId is required"))
			return
		}
		typing := socketio_utils.BoolArg(args, 1, "typing", true)

		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if _, err := chats.Authorize(ctx, userID, chatID); err != nil {
			reply(client, ack, nil, err)
			return
		}

		if redisClient != nil {
			if err := redisClient.SetTyping(ctx, chatID, userID, typing); err != nil {
				logger.Warn("Failed to store typing flag", "chat_id", chatID, "user_id", userID, "error", err)
			}
		}

		indicator := redis_models.TypingIndicator{ChatID: chatID, UserID: userID, Typing: typing}
		if err := client.To(socket.Room(services.ChatRoom(chatID))).Emit(services.EventTyping, indicator); err != nil {
			logger.Warn("Failed to relay typing", "chat_id", chatID, "error", err)
		}
		reply(client, ack, gin.H{"chatId": chatID}, nil)
	}
}
