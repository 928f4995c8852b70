// File: server/server.go
package server

import (
	"github.com/lguibr/bollywood"
)

// Server holds the actor engine and the room manager the WebSocket edge
// forwards connections to.
type Server struct {
	engine         *bollywood.Engine
	roomManagerPID *bollywood.PID
}

// New creates a Server wired to a running engine and room manager.
func New(engine *bollywood.Engine, roomManagerPID *bollywood.PID) *Server {
	return &Server{
		engine:         engine,
		roomManagerPID: roomManagerPID,
	}
}

// GetEngine returns the actor engine.
func (s *Server) GetEngine() *bollywood.Engine { return s.engine }

// GetRoomManagerPID returns the room manager's PID.
func (s *Server) GetRoomManagerPID() *bollywood.PID { return s.roomManagerPID }
