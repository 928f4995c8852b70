// File: game/broadcaster_actor.go
package game

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/lguibr/bollywood"
	"golang.org/x/net/websocket"
)

// BroadcasterActor owns all WebSocket writes for one room.
type BroadcasterActor struct {
	clients      map[*websocket.Conn]bool // Set of active connections
	mu           sync.RWMutex             // Protects the clients map
	selfPID      *bollywood.PID
	gameActorPID *bollywood.PID // PID of the GameActor to notify on disconnect
}

// NewBroadcasterProducer creates a producer for BroadcasterActor.
func NewBroadcasterProducer(gameActorPID *bollywood.PID) bollywood.Producer {
	return func() bollywood.Actor {
		return &BroadcasterActor{
			clients:      make(map[*websocket.Conn]bool),
			gameActorPID: gameActorPID,
		}
	}
}

// Receive handles messages for the BroadcasterActor.
func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			pidStr := "unknown"
			if a.selfPID != nil {
				pidStr = a.selfPID.String()
			}
			fmt.Printf("PANIC recovered in BroadcasterActor %s Receive: %v\nStack trace:\n%s\n", pidStr, r, string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:

	case AddClient:
		if msg.Conn != nil {
			a.mu.Lock()
			a.clients[msg.Conn] = true
			a.mu.Unlock()
		}

	case RemoveClient:
		if msg.Conn != nil {
			a.mu.Lock()
			delete(a.clients, msg.Conn)
			a.mu.Unlock()
		}

	case BroadcastStateCommand:
		a.broadcastJSON(ctx, &msg.State)

	case BroadcastUpdatesCommand:
		if len(msg.Updates) > 0 {
			batch := GameUpdatesBatch{MessageType: "gameUpdates", Updates: msg.Updates}
			a.broadcastJSON(ctx, &batch)
		}

	case GameOverMessage:
		fmt.Printf("Broadcaster %s: Received GameOverMessage for room %s. Broadcasting and closing connections.\n", a.selfPID, msg.RoomPID)
		a.broadcastJSON(ctx, &msg)
		a.closeAllConnections(ctx)

	case bollywood.Stopping:
		fmt.Printf("Broadcaster %s: Stopping. Closing remaining connections.\n", a.selfPID)
		a.closeAllConnections(ctx)

	case bollywood.Stopped:

	default:
		fmt.Printf("BroadcasterActor %s: Received unknown message type: %T\n", a.selfPID, msg)
	}
}

// broadcastJSON sends one JSON message to every registered client and reports
// the connections that turned out to be dead.
func (a *BroadcasterActor) broadcastJSON(ctx bollywood.Context, payload interface{}) {
	a.mu.RLock()
	clientsToSend := make([]*websocket.Conn, 0, len(a.clients))
	for conn := range a.clients {
		clientsToSend = append(clientsToSend, conn)
	}
	a.mu.RUnlock()

	if len(clientsToSend) == 0 {
		return
	}

	disconnectedClients := []*websocket.Conn{}
	for _, ws := range clientsToSend {
		err := websocket.JSON.Send(ws, payload)
		if err != nil {
			errStr := err.Error()
			isClosedErr := strings.Contains(errStr, "use of closed network connection") ||
				strings.Contains(errStr, "broken pipe") ||
				strings.Contains(errStr, "connection reset by peer") ||
				strings.Contains(errStr, "EOF") ||
				strings.Contains(errStr, "write: connection timed out")

			if isClosedErr {
				disconnectedClients = append(disconnectedClients, ws)
			} else {
				fmt.Printf("ERROR: BroadcasterActor %s: Failed to write to client %s: %v\n", a.selfPID, ws.RemoteAddr(), err)
			}
		}
	}

	if len(disconnectedClients) > 0 {
		a.handleDisconnects(ctx, disconnectedClients)
	}
}

// closeAllConnections closes all managed connections and notifies the GameActor.
func (a *BroadcasterActor) closeAllConnections(ctx bollywood.Context) {
	a.mu.Lock()
	clientsToClose := make([]*websocket.Conn, 0, len(a.clients))
	for conn := range a.clients {
		clientsToClose = append(clientsToClose, conn)
	}
	a.clients = make(map[*websocket.Conn]bool)
	a.mu.Unlock()

	if len(clientsToClose) > 0 {
		fmt.Printf("Broadcaster %s: Closing %d connections.\n", a.selfPID, len(clientsToClose))
		for _, ws := range clientsToClose {
			_ = ws.Close()
			if a.gameActorPID != nil && ctx.Engine() != nil {
				ctx.Engine().Send(a.gameActorPID, PlayerDisconnect{WsConn: ws}, a.selfPID)
			}
		}
	}
}

// handleDisconnects removes dead clients and notifies the GameActor.
func (a *BroadcasterActor) handleDisconnects(ctx bollywood.Context, disconnectedClients []*websocket.Conn) {
	a.mu.Lock()
	for _, ws := range disconnectedClients {
		delete(a.clients, ws)
	}
	a.mu.Unlock()

	if a.gameActorPID != nil && ctx.Engine() != nil {
		for _, ws := range disconnectedClients {
			ctx.Engine().Send(a.gameActorPID, PlayerDisconnect{WsConn: ws}, a.selfPID)
		}
	}
}
