// File: server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/lguibr/bollywood"
	"github.com/lguibr/volley/game"
	"golang.org/x/net/websocket"
)

// roomListAskTimeout bounds the Ask to the room manager from the HTTP path.
const roomListAskTimeout = 500 * time.Millisecond

// HandleSubscribe spawns a ConnectionHandlerActor per connection and blocks
// until that actor is done, keeping the websocket handler (and so the
// connection) alive for the actor's lifetime.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		connectionAddr := ws.RemoteAddr().String()
		fmt.Printf("HandleSubscribe: New connection from %s\n", connectionAddr)

		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("PANIC recovered in HandleSubscribe for %s: %v\nStack trace:\n%s\n", connectionAddr, r, string(debug.Stack()))
			}
			_ = ws.Close()
		}()

		if s.engine == nil || s.roomManagerPID == nil {
			fmt.Printf("HandleSubscribe: Server engine or RoomManagerPID is nil. Closing connection %s.\n", connectionAddr)
			return
		}

		done := make(chan struct{})
		producer := NewConnectionHandlerProducer(ConnectionHandlerArgs{
			Conn:           ws,
			Engine:         s.engine,
			RoomManagerPID: s.roomManagerPID,
			Done:           done,
		})
		handlerPID := s.engine.Spawn(bollywood.NewProps(producer))
		if handlerPID == nil {
			fmt.Printf("HandleSubscribe: Failed to spawn handler for %s. Closing connection.\n", connectionAddr)
			return
		}

		<-done
		fmt.Printf("HandleSubscribe: Handler for %s finished.\n", connectionAddr)
	}
}

// HandleRooms serves the active room list as JSON via an Ask to the manager.
func (s *Server) HandleRooms() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fmt.Printf("PANIC recovered in HandleRooms: %v\nStack trace:\n%s\n", rec, string(debug.Stack()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		if s.engine == nil || s.roomManagerPID == nil {
			http.Error(w, "server not ready", http.StatusServiceUnavailable)
			return
		}

		reply, err := s.engine.Ask(s.roomManagerPID, game.GetRoomListRequest{}, roomListAskTimeout)
		if err != nil {
			http.Error(w, fmt.Sprintf("room list query failed: %v", err), http.StatusInternalServerError)
			return
		}
		roomList, ok := reply.(game.RoomListResponse)
		if !ok {
			http.Error(w, fmt.Sprintf("unexpected reply type %T", reply), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(roomList.Rooms); err != nil {
			fmt.Println("Error writing room list:", err)
		}
	}
}
