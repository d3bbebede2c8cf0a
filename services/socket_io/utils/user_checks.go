package socketio_utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Roomio/pkg/logger"
	"Roomio/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

var ErrUnknownUser = errors.New("user no longer exists")

// UserLookup is the slice of services.UserService the handshake needs.
type UserLookup interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// AuthenticateHandshake validates the JWT carried in the handshake auth
// payload and returns the user id it names.
func AuthenticateHandshake(ctx context.Context, auth interface{}, secret string, users UserLookup) (string, error) {
	token, err := utils.TokenFromAuth(auth)
	if err != nil {
		return "", err
	}
	claims, err := utils.ValidateJWT(token, secret)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	ok, err := users.Exists(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnknownUser
	}
	return claims.UserID, nil
}

// VerifyUserConnection authenticates a freshly connected client. On failure
// the client gets an "error" event and is disconnected.
func VerifyUserConnection(client *socket.Socket, secret string, users UserLookup) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userID, err := AuthenticateHandshake(ctx, client.Handshake().Auth, secret, users)
	if err != nil {
		logger.Warn("Socket authentication failed", "socket_id", client.Id(), "error", err)
		client.Emit("error", gin.H{
			"error": "Authentication failed. Set the 'authorization' auth field to 'Bearer <token>'",
		})
		client.Disconnect(true)
		return "", false
	}
	return userID, true
}
