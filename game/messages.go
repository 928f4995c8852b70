// File: game/messages.go
package game

import (
	"github.com/lguibr/bollywood"
	"github.com/lguibr/volley/utils"
	"golang.org/x/net/websocket"
)

// --- Message Header ---
// Used for identifying message types after unmarshalling from JSON.
type MessageHeader struct {
	MessageType string `json:"messageType"`
}

// --- WebSocket Messages (Client -> Server) ---

// DirectionMessage carries a paddle input key name ("ArrowUp", "ArrowDown",
// anything else stops the paddle).
type DirectionMessage struct {
	MessageType string `json:"messageType"` // "direction"
	Direction   string `json:"direction"`
}

// ResizeMessage tells the room the client's viewport changed.
type ResizeMessage struct {
	MessageType string `json:"messageType"` // "resize"
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// PauseMessage freezes the match.
type PauseMessage struct {
	MessageType string `json:"messageType"` // "pause"
}

// ResumeMessage unfreezes a paused match.
type ResumeMessage struct {
	MessageType string `json:"messageType"` // "resume"
}

// --- WebSocket Messages (Server -> Client) ---

// PlayerAssignmentMessage informs the client of their assigned seat.
type PlayerAssignmentMessage struct {
	MessageType string `json:"messageType"` // "playerAssignment"
	PlayerIndex int    `json:"playerIndex"`
}

// BallSnapshot is the wire shape of the ball inside a state snapshot.
type BallSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Vx     float64 `json:"vx"`
	Vy     float64 `json:"vy"`
	Radius float64 `json:"radius"`
}

// PaddleSnapshot is the wire shape of one paddle inside a state snapshot.
type PaddleSnapshot struct {
	Index     int     `json:"index"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Direction string  `json:"direction"`
}

// StateSnapshotMessage is the periodic full-state broadcast.
type StateSnapshotMessage struct {
	MessageType string                           `json:"messageType"` // "gameState"
	Phase       GameState                        `json:"phase"`
	Countdown   float64                          `json:"countdown"`
	Width       int                              `json:"width"`
	Height      int                              `json:"height"`
	Ball        BallSnapshot                     `json:"ball"`
	Paddles     [utils.MaxPlayers]PaddleSnapshot `json:"paddles"`
	Players     [utils.MaxPlayers]*Player        `json:"players"`
	Scores      [utils.MaxPlayers]int32          `json:"scores"`
}

// GameUpdatesBatch bundles the atomic updates accumulated between broadcast
// ticks so they travel in one frame.
type GameUpdatesBatch struct {
	MessageType string        `json:"messageType"` // "gameUpdates"
	Updates     []interface{} `json:"updates"`
}

// ScoreUpdateMessage signals a goal with the rally that produced it.
type ScoreUpdateMessage struct {
	MessageType string                  `json:"messageType"` // "scoreUpdate"
	Scorer      int                     `json:"scorer"`
	Scores      [utils.MaxPlayers]int32 `json:"scores"`
	Rally       RallyRecord             `json:"rally"`
}

// PlayerJoined signals a new player has taken a seat.
type PlayerJoined struct {
	MessageType string `json:"messageType"` // "playerJoined"
	Player      Player `json:"player"`
}

// PlayerLeft signals a player has left the room.
type PlayerLeft struct {
	MessageType string `json:"messageType"` // "playerLeft"
	Index       int    `json:"index"`
}

// GameOverMessage signals the end of the match with the final tallies.
type GameOverMessage struct {
	MessageType string                  `json:"messageType"` // "gameOver"
	WinnerIndex int                     `json:"winnerIndex"`
	FinalScores [utils.MaxPlayers]int32 `json:"finalScores"`
	Stats       StatsSummary            `json:"stats"`
	RoomPID     string                  `json:"roomPID"`
}

// --- Actor Messages (Internal Communication) ---

// --- RoomManagerActor Messages ---

// FindRoomRequest asks the RoomManager to find or create a room.
type FindRoomRequest struct {
	ReplyTo *bollywood.PID // PID of the ConnectionHandlerActor asking
}

// AssignRoomResponse is the reply from RoomManager with the assigned GameActor PID.
type AssignRoomResponse struct {
	RoomPID *bollywood.PID // nil if no room could be assigned
}

// GameRoomEmpty notifies the RoomManager that a GameActor is finished or empty.
type GameRoomEmpty struct {
	RoomPID *bollywood.PID
}

// GetRoomListRequest asks the RoomManager for the list of active rooms (via Ask).
type GetRoomListRequest struct{}

// RoomListResponse contains the map of active rooms and player counts.
type RoomListResponse struct {
	Rooms map[string]int // Room PID string to player count
}

// --- ConnectionHandlerActor Messages ---

// InternalReadLoopMsg wraps data read from the WebSocket for processing by the actor.
type InternalReadLoopMsg struct {
	Payload []byte
}

// --- GameActor Messages ---

// AssignPlayerToRoom tells the GameActor to seat the player behind a connection.
type AssignPlayerToRoom struct {
	WsConn *websocket.Conn
}

// PlayerDisconnect tells the GameActor that a player's connection was lost.
type PlayerDisconnect struct {
	WsConn *websocket.Conn
}

// ForwardedClientMessage carries a parsed client payload from the
// ConnectionHandler to the GameActor.
type ForwardedClientMessage struct {
	WsConn  *websocket.Conn
	Payload []byte // Raw JSON with a messageType discriminator
}

// GameTick signals the GameActor to advance the simulation.
type GameTick struct{}

// BroadcastTick signals the GameActor to flush pending updates and state.
type BroadcastTick struct{}

// resizeDebounceFired is posted back to the GameActor's own mailbox by the
// debounce timer once resize events have gone quiet.
type resizeDebounceFired struct {
	Width  int
	Height int
}

// --- BroadcasterActor Messages ---

// AddClient tells the Broadcaster to start sending updates to a new connection.
type AddClient struct {
	Conn *websocket.Conn
}

// RemoveClient tells the Broadcaster to stop sending updates to a connection.
type RemoveClient struct {
	Conn *websocket.Conn
}

// BroadcastStateCommand sends a full state snapshot to every client.
type BroadcastStateCommand struct {
	State StateSnapshotMessage
}

// BroadcastUpdatesCommand sends a batch of atomic updates to every client.
type BroadcastUpdatesCommand struct {
	Updates []interface{}
}

// --- Internal Test Messages ---

// internalTestingSeatPlayer seats a player without a live socket so actor
// tests can drive the room directly.
type internalTestingSeatPlayer struct {
	PlayerIndex int
}

// internalGetSnapshotRequest asks the GameActor for the current state snapshot
// (used via Ask in tests).
type internalGetSnapshotRequest struct{}

// internalAdvanceMatch advances the simulation by a fixed number of seconds,
// bypassing the wall-clock ticker (used in tests).
type internalAdvanceMatch struct {
	Seconds float64
}

// internalSetBallState teleports the ball for scoring-path tests.
type internalSetBallState struct {
	X, Y, Vx, Vy float64
}

// internalClientCommand injects a client payload for a seat without a live
// socket (used in tests).
type internalClientCommand struct {
	PlayerIndex int
	Payload     []byte
}
