// File: game/game_actor.go
package game

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lguibr/bollywood"
	"github.com/lguibr/volley/utils"
	"golang.org/x/net/websocket"
)

// GameActor owns one Match and its two seats. Every mutation of the match
// happens inside Receive, so the simulation itself stays single-threaded;
// tickers and debounce timers only post messages back to this mailbox.
type GameActor struct {
	cfg    utils.Config
	engine *bollywood.Engine
	match  *Match

	players     [utils.MaxPlayers]*playerInfo
	connToIndex map[*websocket.Conn]int

	selfPID        *bollywood.PID
	roomManagerPID *bollywood.PID
	broadcasterPID *bollywood.PID

	physicsTicker   *time.Ticker
	broadcastTicker *time.Ticker
	stopPhysicsCh   chan struct{}
	stopBroadcastCh chan struct{}
	tickerMu        sync.Mutex
	lastTick        time.Time

	pendingUpdates []interface{}
	updatesMu      sync.Mutex

	resizeTimer   *time.Timer
	resizePaused  bool
	pendingWidth  int
	pendingHeight int

	isStopping  atomic.Bool
	gameOver    atomic.Bool
	cleanupOnce sync.Once
}

// playerInfo holds state associated with a seated player.
type playerInfo struct {
	Player      *Player
	Ws          *websocket.Conn
	IsConnected bool
}

// NewGameActorProducer creates a producer for the GameActor. The match is
// built eagerly so a bad config surfaces as a panic at spawn time, which is
// the wiring-bug policy for this layer.
func NewGameActorProducer(engine *bollywood.Engine, cfg utils.Config, roomManagerPID *bollywood.PID) bollywood.Producer {
	return func() bollywood.Actor {
		match, err := NewMatch(cfg)
		if err != nil {
			panic(fmt.Sprintf("GameActor: cannot build match: %v", err))
		}
		return &GameActor{
			cfg:             cfg,
			engine:          engine,
			match:           match,
			connToIndex:     make(map[*websocket.Conn]int),
			roomManagerPID:  roomManagerPID,
			stopPhysicsCh:   make(chan struct{}),
			stopBroadcastCh: make(chan struct{}),
		}
	}
}

// Receive is the main message handler for the GameActor.
func (a *GameActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			pidStr := "unknown"
			if a.selfPID != nil {
				pidStr = a.selfPID.String()
			}
			fmt.Printf("PANIC recovered in GameActor %s Receive: %v\nStack trace:\n%s\n", pidStr, r, string(debug.Stack()))
			if ctx.RequestID() != "" {
				ctx.Reply(fmt.Errorf("game actor panicked: %v", r))
			}
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.handleStart(ctx)

	case GameTick:
		a.handleGameTick(ctx)

	case BroadcastTick:
		a.handleBroadcastTick(ctx)

	case AssignPlayerToRoom:
		a.handlePlayerConnect(ctx, msg.WsConn)

	case PlayerDisconnect:
		a.handlePlayerDisconnect(ctx, msg.WsConn)

	case ForwardedClientMessage:
		a.handleClientMessage(ctx, msg.WsConn, msg.Payload)

	case resizeDebounceFired:
		a.handleResizeDebounceFired(ctx, msg.Width, msg.Height)

	case internalTestingSeatPlayer:
		a.seatPlayer(ctx, msg.PlayerIndex, nil)

	case internalGetSnapshotRequest:
		if ctx.RequestID() != "" {
			ctx.Reply(a.createStateSnapshot())
		}

	case internalAdvanceMatch:
		a.applyMatchEvents(ctx, a.match.Advance(msg.Seconds))
		if ctx.RequestID() != "" {
			ctx.Reply(a.createStateSnapshot())
		}

	case internalSetBallState:
		ball := a.match.Ball()
		ball.X, ball.Y = msg.X, msg.Y
		ball.Vx, ball.Vy = msg.Vx, msg.Vy

	case internalClientCommand:
		a.dispatchClientPayload(ctx, msg.PlayerIndex, msg.Payload)

	case bollywood.Stopping:
		a.handleStopping(ctx)

	case bollywood.Stopped:
		fmt.Printf("GameActor %s: Stopped.\n", a.selfPID)

	default:
		fmt.Printf("GameActor %s: Received unknown message type: %T\n", a.selfPID, msg)
		if ctx.RequestID() != "" {
			ctx.Reply(fmt.Errorf("unknown message type: %T", msg))
		}
	}
}

// handleStart spawns the broadcaster. Tickers start with the first player.
func (a *GameActor) handleStart(ctx bollywood.Context) {
	if a.broadcasterPID == nil {
		a.broadcasterPID = a.engine.Spawn(bollywood.NewProps(NewBroadcasterProducer(a.selfPID)))
		if a.broadcasterPID == nil {
			fmt.Printf("FATAL: GameActor %s failed to spawn BroadcasterActor. Stopping self.\n", a.selfPID)
			a.engine.Stop(a.selfPID)
			return
		}
	}
	fmt.Printf("GameActor %s: Started. Broadcaster: %s.\n", a.selfPID, a.broadcasterPID)
}

// handleGameTick advances the match by the wall-clock elapsed time since the
// previous tick. Match.Advance clamps and sub-steps internally.
func (a *GameActor) handleGameTick(ctx bollywood.Context) {
	now := time.Now()
	if a.lastTick.IsZero() {
		a.lastTick = now
		return
	}
	elapsed := now.Sub(a.lastTick).Seconds()
	a.lastTick = now
	a.applyMatchEvents(ctx, a.match.Advance(elapsed))
}

// startTickers starts the physics and broadcast tickers once.
func (a *GameActor) startTickers() {
	a.tickerMu.Lock()
	defer a.tickerMu.Unlock()

	if a.physicsTicker == nil {
		a.physicsTicker = time.NewTicker(a.cfg.GameTickPeriod)
		a.lastTick = time.Time{}
		stopCh := a.stopPhysicsCh
		tickerCh := a.physicsTicker.C
		go a.runTickerLoop(tickerCh, stopCh, GameTick{})
	}

	if a.broadcastTicker == nil {
		broadcastInterval := time.Second / time.Duration(a.cfg.BroadcastRateHz)
		if broadcastInterval <= 0 {
			broadcastInterval = 16 * time.Millisecond
		}
		a.broadcastTicker = time.NewTicker(broadcastInterval)
		stopCh := a.stopBroadcastCh
		tickerCh := a.broadcastTicker.C
		go a.runTickerLoop(tickerCh, stopCh, BroadcastTick{})
	}
}

// runTickerLoop forwards ticker fires into the actor's mailbox until stopped.
func (a *GameActor) runTickerLoop(tickerCh <-chan time.Time, stopCh chan struct{}, msg interface{}) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in GameActor %s ticker loop: %v\n", a.selfPID, r)
		}
	}()
	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-tickerCh:
			if !ok {
				return
			}
			if a.isStopping.Load() || a.gameOver.Load() {
				return
			}
			engine, selfPID := a.engine, a.selfPID
			if engine == nil || selfPID == nil {
				return
			}
			engine.Send(selfPID, msg, nil)
		}
	}
}

// stopTickers stops both tickers and signals their loops.
func (a *GameActor) stopTickers() {
	a.tickerMu.Lock()
	defer a.tickerMu.Unlock()

	if a.physicsTicker != nil {
		a.physicsTicker.Stop()
		select {
		case <-a.stopPhysicsCh:
		default:
			close(a.stopPhysicsCh)
		}
		a.physicsTicker = nil
	}
	if a.broadcastTicker != nil {
		a.broadcastTicker.Stop()
		select {
		case <-a.stopBroadcastCh:
		default:
			close(a.stopBroadcastCh)
		}
		a.broadcastTicker = nil
	}
}

// handleStopping runs cleanup exactly once.
func (a *GameActor) handleStopping(ctx bollywood.Context) {
	if a.isStopping.CompareAndSwap(false, true) {
		fmt.Printf("GameActor %s: Stopping.\n", a.selfPID)
		a.gameOver.Store(true)
		a.performCleanup()
	}
}

// performCleanup stops tickers, the resize timer, the broadcaster, and closes
// the remaining connections.
func (a *GameActor) performCleanup() {
	a.cleanupOnce.Do(func() {
		a.stopTickers()
		if a.resizeTimer != nil {
			a.resizeTimer.Stop()
			a.resizeTimer = nil
		}

		a.updatesMu.Lock()
		a.pendingUpdates = a.pendingUpdates[:0]
		a.updatesMu.Unlock()

		connectionsToClose := []*websocket.Conn{}
		for i := 0; i < utils.MaxPlayers; i++ {
			if pInfo := a.players[i]; pInfo != nil && pInfo.Ws != nil {
				connectionsToClose = append(connectionsToClose, pInfo.Ws)
				delete(a.connToIndex, pInfo.Ws)
				pInfo.Ws = nil
				pInfo.IsConnected = false
			}
			a.players[i] = nil
		}

		broadcasterToStop := a.broadcasterPID
		a.broadcasterPID = nil
		if broadcasterToStop != nil && a.engine != nil {
			a.engine.Stop(broadcasterToStop)
		}
		for _, ws := range connectionsToClose {
			_ = ws.Close()
		}
		fmt.Printf("GameActor %s: Cleanup complete (%d connections closed).\n", a.selfPID, len(connectionsToClose))
	})
}
