// File: server/connection_handler.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lguibr/bollywood"
	"github.com/lguibr/volley/game"
	"golang.org/x/net/websocket"
)

// errActorStopping signals cleanup due to the actor stopping rather than a
// connection failure.
var errActorStopping = errors.New("connection handler actor stopping")

// ConnectionHandlerActor manages a single WebSocket connection lifecycle: it
// asks the room manager for a seat, forwards the socket to the assigned
// GameActor, and runs the read loop.
type ConnectionHandlerActor struct {
	conn           *websocket.Conn
	engine         *bollywood.Engine
	roomManagerPID *bollywood.PID
	gameActorPID   *bollywood.PID // PID of the assigned GameActor
	selfPID        *bollywood.PID
	connAddr       string
	stopReadLoop   chan struct{} // Signals readLoop to stop
	readLoopExited chan struct{} // Signals readLoop has exited
	done           chan struct{} // Signals handler completion
	isAssigned     bool
	closeOnce      sync.Once // Ensures done channel is closed only once
}

// ConnectionHandlerArgs holds arguments for creating the actor.
type ConnectionHandlerArgs struct {
	Conn           *websocket.Conn
	Engine         *bollywood.Engine
	RoomManagerPID *bollywood.PID
	Done           chan struct{}
}

// NewConnectionHandlerProducer creates a producer for ConnectionHandlerActor.
func NewConnectionHandlerProducer(args ConnectionHandlerArgs) bollywood.Producer {
	return func() bollywood.Actor {
		addr := "unknown"
		if args.Conn != nil {
			addr = args.Conn.RemoteAddr().String()
		}
		return &ConnectionHandlerActor{
			conn:           args.Conn,
			engine:         args.Engine,
			roomManagerPID: args.RoomManagerPID,
			connAddr:       addr,
			stopReadLoop:   make(chan struct{}),
			readLoopExited: make(chan struct{}),
			done:           args.Done,
		}
	}
}

// Receive handles messages for the ConnectionHandlerActor.
func (a *ConnectionHandlerActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in ConnectionHandlerActor %s Receive: %v\nStack trace:\n%s\n", a.connAddr, r, string(debug.Stack()))
			a.cleanup(ctx, fmt.Errorf("panic in Receive: %v", r))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		if a.roomManagerPID != nil {
			a.engine.Send(a.roomManagerPID, game.FindRoomRequest{ReplyTo: a.selfPID}, nil)
		} else {
			fmt.Printf("ERROR: ConnectionHandlerActor %s: No RoomManagerPID. Stopping.\n", a.connAddr)
			a.cleanup(ctx, fmt.Errorf("missing RoomManagerPID"))
		}

	case game.AssignRoomResponse:
		if msg.RoomPID == nil {
			fmt.Printf("ConnectionHandlerActor %s: Received nil RoomPID assignment. Closing connection.\n", a.connAddr)
			a.cleanup(ctx, fmt.Errorf("room assignment failed (nil PID)"))
			return
		}
		a.gameActorPID = msg.RoomPID
		a.isAssigned = true
		a.engine.Send(a.gameActorPID, game.AssignPlayerToRoom{WsConn: a.conn}, a.selfPID)
		go a.readLoop(a.engine, a.selfPID)

	case game.InternalReadLoopMsg:
		if a.isAssigned && a.gameActorPID != nil {
			a.engine.Send(a.gameActorPID, game.ForwardedClientMessage{
				WsConn:  a.conn,
				Payload: msg.Payload,
			}, a.selfPID)
		}

	case *net.OpError:
		a.cleanup(ctx, msg)

	case error:
		a.cleanup(ctx, msg)

	case bollywood.Stopping:
		a.signalAndWaitForReadLoop()
		a.performCleanupActions(ctx, errActorStopping)

	case bollywood.Stopped:
		a.closeOnce.Do(func() {
			if a.done != nil {
				close(a.done)
				a.done = nil
			}
		})

	default:
		fmt.Printf("ConnectionHandlerActor %s: Received unexpected message type: %T\n", a.connAddr, msg)
	}
}

// readLoop reads client JSON payloads off the socket and posts them back to
// the actor's mailbox.
func (a *ConnectionHandlerActor) readLoop(engine *bollywood.Engine, selfPID *bollywood.PID) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in ConnectionHandlerActor %s readLoop: %v\nStack trace:\n%s\n", a.connAddr, r, string(debug.Stack()))
		}
		close(a.readLoopExited)
		if engine != nil && selfPID != nil {
			engine.Send(selfPID, errors.New("read loop exited"), nil)
		}
	}()

	for {
		select {
		case <-a.stopReadLoop:
			return
		default:
		}

		if a.conn == nil {
			return
		}
		var message json.RawMessage
		readTimeout := 90 * time.Second
		_ = a.conn.SetReadDeadline(time.Now().Add(readTimeout))
		err := websocket.JSON.Receive(a.conn, &message)
		if a.conn != nil {
			_ = a.conn.SetReadDeadline(time.Time{})
		}

		if err != nil {
			return // Exit loop; the deferred send drives cleanup.
		}

		if selfPID != nil && engine != nil {
			engine.Send(selfPID, game.InternalReadLoopMsg{Payload: []byte(message)}, nil)
		} else {
			fmt.Printf("ERROR: ConnectionHandlerActor %s: Cannot forward read message, engine or selfPID is nil.\n", a.connAddr)
		}
	}
}

// signalAndWaitForReadLoop tells the readLoop goroutine to exit and waits for
// confirmation.
func (a *ConnectionHandlerActor) signalAndWaitForReadLoop() {
	select {
	case <-a.stopReadLoop:
		return
	default:
		close(a.stopReadLoop)
	}

	// Closing the connection unblocks the pending Receive.
	if a.conn != nil {
		_ = a.conn.Close()
	}

	select {
	case <-a.readLoopExited:
	case <-time.After(2 * time.Second):
		fmt.Printf("WARN: ConnectionHandlerActor %s: Timeout waiting for read loop to exit.\n", a.connAddr)
	}
}

// cleanup is called when the connection terminates or the actor stops.
func (a *ConnectionHandlerActor) cleanup(ctx bollywood.Context, reason error) {
	a.signalAndWaitForReadLoop()
	a.performCleanupActions(ctx, reason)
	if !errors.Is(reason, errActorStopping) {
		if a.engine != nil && a.selfPID != nil {
			a.engine.Stop(a.selfPID)
		}
	}
}

// performCleanupActions sends the disconnect signal and drops the connection.
func (a *ConnectionHandlerActor) performCleanupActions(ctx bollywood.Context, reason error) {
	connToDisconnect := a.conn

	if a.isAssigned && a.gameActorPID != nil && connToDisconnect != nil && !errors.Is(reason, errActorStopping) {
		if a.engine != nil && a.selfPID != nil {
			a.engine.Send(a.gameActorPID, game.PlayerDisconnect{WsConn: connToDisconnect}, a.selfPID)
		}
	}

	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
	a.isAssigned = false
}
