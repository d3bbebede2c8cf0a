package handlers

import (
	"context"
	"testing"

	redis_models "Roomio/models/redis"
	"Roomio/services/redis"
	socketio_types "Roomio/services/socket_io/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zishang520/socket.io/v2/socket"
)

func TestReleaseSocketClearsPresenceAfterLastSocket(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := redis.NewRedisClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { redis.CloseRedis(rc) })
	ctx := context.Background()

	// connect A, connect B: B owns the presence key
	sio := socketio_types.NewSocketServer(nil)
	sio.UserConnections["u1"] = map[socket.SocketId]*socket.Socket{"sock-a": nil, "sock-b": nil}
	require.NoError(t, rc.SetOnline(ctx, "u1", "sock-a"))
	require.NoError(t, rc.SetOnline(ctx, "u1", "sock-b"))

	assert.Equal(t, 1, releaseSocket("u1", "sock-b", sio, rc))
	p, err := rc.GetPresence(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, redis_models.StatusOnline, p.Status)

	assert.Equal(t, 0, releaseSocket("u1", "sock-a", sio, rc))
	p, err = rc.GetPresence(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, redis_models.StatusOffline, p.Status)
}

func TestReleaseSocketWithoutRedis(t *testing.T) {
	sio := socketio_types.NewSocketServer(nil)
	sio.UserConnections["u1"] = map[socket.SocketId]*socket.Socket{"sock-a": nil}
	assert.Equal(t, 0, releaseSocket("u1", "sock-a", sio, nil))
	assert.Equal(t, 0, sio.ConnectionCount("u1"))
}
