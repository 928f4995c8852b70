// File: game/game_actor_handlers.go
package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lguibr/bollywood"
	"github.com/lguibr/volley/utils"
	"golang.org/x/net/websocket"
)

// handlePlayerConnect seats a player behind a live connection. Assumes called
// within the actor's message loop.
func (a *GameActor) handlePlayerConnect(ctx bollywood.Context, ws *websocket.Conn) {
	if ws == nil {
		fmt.Printf("GameActor %s: Received connect assignment with nil connection.\n", a.selfPID)
		return
	}
	remoteAddr := ws.RemoteAddr().String()

	if existingIndex, ok := a.connToIndex[ws]; ok {
		if pInfo := a.players[existingIndex]; pInfo != nil && pInfo.IsConnected && pInfo.Ws == ws {
			fmt.Printf("GameActor %s: Connection %s already seated as player %d. Ignoring.\n", a.selfPID, remoteAddr, existingIndex)
			return
		}
		delete(a.connToIndex, ws)
		if a.players[existingIndex] != nil {
			a.players[existingIndex].IsConnected = false
		}
	}

	playerIndex := -1
	for i, p := range a.players {
		if p == nil {
			playerIndex = i
			break
		}
	}
	if playerIndex == -1 {
		fmt.Printf("GameActor %s: Room is full (%d players). Rejecting connection %s.\n", a.selfPID, utils.MaxPlayers, remoteAddr)
		_ = ws.Close()
		return
	}

	fmt.Printf("GameActor %s: Assigning player index %d to %s\n", a.selfPID, playerIndex, remoteAddr)
	a.seatPlayer(ctx, playerIndex, ws)

	if a.broadcasterPID != nil {
		a.engine.Send(a.broadcasterPID, AddClient{Conn: ws}, a.selfPID)
	} else {
		fmt.Printf("ERROR: GameActor %s: Broadcaster PID is nil during player connect for %s.\n", a.selfPID, remoteAddr)
	}

	// The new client learns its seat and the current world before anything else.
	assignment := PlayerAssignmentMessage{MessageType: "playerAssignment", PlayerIndex: playerIndex}
	if err := websocket.JSON.Send(ws, &assignment); err != nil {
		fmt.Printf("WARN: GameActor %s: Failed to send assignment to player %d: %v\n", a.selfPID, playerIndex, err)
	}
	if a.broadcasterPID != nil {
		a.engine.Send(a.broadcasterPID, BroadcastStateCommand{State: a.createStateSnapshot()}, a.selfPID)
	}
	fmt.Printf("GameActor %s: Player %d setup complete.\n", a.selfPID, playerIndex)
}

// seatPlayer creates the player record, maps the connection, queues the join
// update, and starts the tickers on the first seat.
func (a *GameActor) seatPlayer(ctx bollywood.Context, playerIndex int, ws *websocket.Conn) {
	if playerIndex < 0 || playerIndex >= utils.MaxPlayers || a.players[playerIndex] != nil {
		return
	}

	player := CreatePlayer(playerIndex, fmt.Sprintf("player%d", playerIndex))
	a.players[playerIndex] = &playerInfo{
		Player:      player,
		Ws:          ws,
		IsConnected: true,
	}
	if ws != nil {
		a.connToIndex[ws] = playerIndex
	}

	a.addUpdate(&PlayerJoined{MessageType: "playerJoined", Player: *player})
	a.startTickers()
}

// handlePlayerDisconnect frees the seat behind a lost connection and notifies
// the room manager once the room is empty.
func (a *GameActor) handlePlayerDisconnect(ctx bollywood.Context, conn *websocket.Conn) {
	if conn == nil {
		return
	}

	playerIndex, playerFound := a.connToIndex[conn]
	if !playerFound || playerIndex < 0 || playerIndex >= utils.MaxPlayers ||
		a.players[playerIndex] == nil || a.players[playerIndex].Ws != conn {
		if playerFound {
			delete(a.connToIndex, conn)
		}
		return
	}
	pInfo := a.players[playerIndex]
	if !pInfo.IsConnected {
		return
	}

	fmt.Printf("GameActor %s: Handling disconnect for player %d (%s)\n", a.selfPID, playerIndex, conn.RemoteAddr())
	pInfo.IsConnected = false
	delete(a.connToIndex, conn)
	a.players[playerIndex] = nil

	// An empty seat's paddle holds position.
	a.match.SetPaddleDirection(playerIndex, utils.DirectionNone)
	a.addUpdate(&PlayerLeft{MessageType: "playerLeft", Index: playerIndex})

	if a.broadcasterPID != nil {
		a.engine.Send(a.broadcasterPID, RemoveClient{Conn: conn}, a.selfPID)
	}

	roomIsEmpty := true
	for _, p := range a.players {
		if p != nil {
			roomIsEmpty = false
			break
		}
	}
	if roomIsEmpty {
		fmt.Printf("GameActor %s: Last player disconnected. Notifying RoomManager %s.\n", a.selfPID, a.roomManagerPID)
		if a.roomManagerPID != nil && a.selfPID != nil {
			a.engine.Send(a.roomManagerPID, GameRoomEmpty{RoomPID: a.selfPID}, nil)
		} else if a.selfPID != nil {
			a.engine.Stop(a.selfPID)
		}
	}
}

// handleClientMessage dispatches a parsed client payload by its messageType.
func (a *GameActor) handleClientMessage(ctx bollywood.Context, conn *websocket.Conn, payload []byte) {
	playerIndex, ok := a.playerIndexFor(conn)
	if !ok {
		return
	}
	a.dispatchClientPayload(ctx, playerIndex, payload)
}

func (a *GameActor) dispatchClientPayload(ctx bollywood.Context, playerIndex int, payload []byte) {
	var header MessageHeader
	if err := json.Unmarshal(payload, &header); err != nil {
		fmt.Printf("GameActor %s: Dropping unparseable payload from player %d: %v\n", a.selfPID, playerIndex, err)
		return
	}

	switch header.MessageType {
	case "direction":
		var msg DirectionMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return
		}
		a.match.SetPaddleDirection(playerIndex, utils.DirectionFromString(msg.Direction))

	case "resize":
		var msg ResizeMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return
		}
		a.handleResizeRequest(msg.Width, msg.Height)

	case "pause":
		a.match.Pause()

	case "resume":
		// A resize in flight holds the pause until the debounce fires.
		if a.resizeTimer == nil && !a.resizePaused {
			a.match.Resume()
		}

	default:
		fmt.Printf("GameActor %s: Unknown client messageType %q from player %d\n", a.selfPID, header.MessageType, playerIndex)
	}
}

// playerIndexFor validates that the connection maps to a live seat.
func (a *GameActor) playerIndexFor(conn *websocket.Conn) (int, bool) {
	if conn == nil {
		return -1, false
	}
	playerIndex, found := a.connToIndex[conn]
	if !found || playerIndex < 0 || playerIndex >= utils.MaxPlayers {
		return -1, false
	}
	pInfo := a.players[playerIndex]
	if pInfo == nil || !pInfo.IsConnected || pInfo.Ws != conn {
		return -1, false
	}
	return playerIndex, true
}

// handleResizeRequest force-pauses the match and (re)arms the debounce timer.
// Physics never runs against a viewport whose dimensions are mid-transition.
func (a *GameActor) handleResizeRequest(width, height int) {
	if width <= 0 || height <= 0 {
		fmt.Printf("GameActor %s: Ignoring resize to %dx%d.\n", a.selfPID, width, height)
		return
	}
	a.pendingWidth, a.pendingHeight = width, height

	if !a.match.IsPaused() {
		a.match.Pause()
		a.resizePaused = true
	}

	if a.resizeTimer != nil {
		a.resizeTimer.Stop()
	}
	engine, selfPID := a.engine, a.selfPID
	w, h := width, height
	a.resizeTimer = time.AfterFunc(a.cfg.ResizeDebounce, func() {
		if engine != nil && selfPID != nil {
			engine.Send(selfPID, resizeDebounceFired{Width: w, Height: h}, nil)
		}
	})
}

// handleResizeDebounceFired applies the rescale once resize events go quiet,
// then lifts the force-pause.
func (a *GameActor) handleResizeDebounceFired(ctx bollywood.Context, width, height int) {
	if width != a.pendingWidth || height != a.pendingHeight {
		// A newer resize re-armed the timer after this fire was queued.
		return
	}
	a.resizeTimer = nil
	if !a.match.HandleResize(width, height) {
		fmt.Printf("GameActor %s: Resize to %dx%d skipped.\n", a.selfPID, width, height)
	}
	if a.resizePaused {
		a.match.Resume()
		a.resizePaused = false
	}
	if a.broadcasterPID != nil {
		a.engine.Send(a.broadcasterPID, BroadcastStateCommand{State: a.createStateSnapshot()}, a.selfPID)
	}
}
