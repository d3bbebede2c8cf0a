package socket_io

import (
	"time"

	"Roomio/pkg/logger"
	"Roomio/services"
	"Roomio/services/redis"
	"Roomio/services/socket_io/handlers"
	socketio_types "Roomio/services/socket_io/types"
	socketio_utils "Roomio/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer struct {
	*socketio_types.SocketServer
	options *socket.ServerOptions
}

// New builds the socket.io server. Its Emit method is the services.Notifier
// used for realtime fan-out, so it must exist before the services do; Start
// wires the event handlers once they are available.
func New(corsOrigins []string) *MySocketServer {
	c := socket.DefaultServerOptions()
	c.SetServeClient(false)
	c.SetPingInterval(25 * time.Second)
	c.SetPingTimeout(20 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))

	origin := "*"
	if len(corsOrigins) == 1 {
		origin = corsOrigins[0]
	}
	c.SetCors(&types.Cors{
		Origin:      origin,
		Credentials: true,
	})

	return &MySocketServer{
		SocketServer: socketio_types.NewSocketServer(socket.NewServer(nil, nil)),
		options:      c,
	}
}

// Start registers the connection handler and mounts the server on router.
func (sio *MySocketServer) Start(router *gin.Engine, jwtSecret string, svc *services.Services, redisClient *redis.RedisClient) {
	server := sio.SocketServer

	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		userID, ok := socketio_utils.VerifyUserConnection(client, jwtSecret, svc.Users)
		if !ok {
			return
		}

		handlers.HandleConnected(client, userID, svc.Chats, redisClient, server)

		client.On("join_chat", handlers.HandleJoinChat(client, userID, svc.Chats))

		client.On("send_message", handlers.HandleSendMessage(client, userID, svc.Chats))

		client.On("typing", handlers.HandleTyping(client, userID, svc.Chats, redisClient))

		client.On("heartbeat", handlers.HandleHeartbeat(client, userID, redisClient))

		client.On("disconnecting", handlers.HandleDisconnecting(client, userID, redisClient, server))
	})

	handler := gin.WrapH(sio.Sio_server.ServeHandler(sio.options))
	router.GET("/socket.io/*f", handler)
	router.POST("/socket.io/*f", handler)

	logger.Info("Socket server started")
}

func (sio *MySocketServer) Close() {
	sio.Sio_server.Close(nil)
}
