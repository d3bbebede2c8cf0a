package socketio_types

import (
	"sync"

	"Roomio/pkg/logger"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer wraps the socket.io server and tracks the live sockets of
// every connected user. A user may have several tabs or devices open.
type SocketServer struct {
	Sio_server *socket.Server
	// userID -> socketID -> socket
	UserConnections map[string]map[socket.SocketId]*socket.Socket
	mutex           sync.RWMutex
}

func NewSocketServer(server *socket.Server) *SocketServer {
	return &SocketServer{
		Sio_server:      server,
		UserConnections: make(map[string]map[socket.SocketId]*socket.Socket),
	}
}

func (s *SocketServer) AddConnection(userID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	conns, ok := s.UserConnections[userID]
	if !ok {
		conns = make(map[socket.SocketId]*socket.Socket)
		s.UserConnections[userID] = conns
	}
	conns[client.Id()] = client
}

// RemoveConnection drops one socket and reports how many the user still has.
func (s *SocketServer) RemoveConnection(userID string, socketID socket.SocketId) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	conns, ok := s.UserConnections[userID]
	if !ok {
		return 0
	}
	delete(conns, socketID)
	if len(conns) == 0 {
		delete(s.UserConnections, userID)
		return 0
	}
	return len(conns)
}

func (s *SocketServer) ConnectionCount(userID string) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.UserConnections[userID])
}

// GetConnections returns a snapshot of the user's sockets.
func (s *SocketServer) GetConnections(userID string) []*socket.Socket {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]*socket.Socket, 0, len(s.UserConnections[userID]))
	for _, c := range s.UserConnections[userID] {
		out = append(out, c)
	}
	return out
}

// Emit sends event to every socket in room. It satisfies services.Notifier.
func (s *SocketServer) Emit(room, event string, payload interface{}) {
	if s == nil || s.Sio_server == nil {
		return
	}
	if err := s.Sio_server.To(socket.Room(room)).Emit(event, payload); err != nil {
		logger.Warn("Socket emit failed", "room", room, "event", event, "error", err)
	}
}
