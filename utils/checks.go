package utils

import (
	"errors"

	"github.com/zishang520/socket.io/v2/socket"
)

// TokenFromHandshake reads the "authorization" field of the socket.io
// handshake auth payload and returns the bare JWT.
func TokenFromHandshake(client *socket.Socket) (string, error) {
	return TokenFromAuth(client.Handshake().Auth)
}

// TokenFromAuth accepts {"authorization": "Bearer <jwt>"} and, for clients
// that cannot set the prefix, {"token": "<jwt>"}.
func TokenFromAuth(auth interface{}) (string, error) {
	authData, ok := auth.(map[string]interface{})
	if !ok {
		return "", errors.New("authentication data missing")
	}

	raw, ok := authData["authorization"].(string)
	if !ok {
		if token, ok := authData["token"].(string); ok && token != "" {
			return token, nil
		}
		return "", ErrMissingToken
	}
	return BearerToken(raw)
}
