// File: game/game_actor_broadcast.go
package game

import (
	"fmt"

	"github.com/lguibr/bollywood"
	"github.com/lguibr/volley/utils"
)

// createStateSnapshot flattens the match into the wire shape.
func (a *GameActor) createStateSnapshot() StateSnapshotMessage {
	ball := a.match.Ball()
	snapshot := StateSnapshotMessage{
		MessageType: "gameState",
		Phase:       a.match.State(),
		Countdown:   a.match.CountdownRemaining(),
		Width:       a.match.Width(),
		Height:      a.match.Height(),
		Ball: BallSnapshot{
			X: ball.X, Y: ball.Y,
			Vx: ball.Vx, Vy: ball.Vy,
			Radius: ball.Radius,
		},
		Scores: a.match.Scores(),
	}
	for i := 0; i < utils.MaxPlayers; i++ {
		p := a.match.Paddle(i)
		snapshot.Paddles[i] = PaddleSnapshot{
			Index: i,
			X:     p.X, Y: p.Y,
			Width: p.Width, Height: p.Height,
			Direction: p.Direction,
		}
		if pInfo := a.players[i]; pInfo != nil {
			snapshot.Players[i] = pInfo.Player
		}
	}
	return snapshot
}

// addUpdate queues an atomic update for the next broadcast tick.
func (a *GameActor) addUpdate(updateMsg interface{}) {
	a.updatesMu.Lock()
	a.pendingUpdates = append(a.pendingUpdates, updateMsg)
	a.updatesMu.Unlock()
}

// handleBroadcastTick flushes pending updates and the state snapshot.
func (a *GameActor) handleBroadcastTick(ctx bollywood.Context) {
	if a.broadcasterPID == nil {
		return
	}

	a.updatesMu.Lock()
	var updatesToSend []interface{}
	if len(a.pendingUpdates) > 0 {
		updatesToSend = make([]interface{}, len(a.pendingUpdates))
		copy(updatesToSend, a.pendingUpdates)
		a.pendingUpdates = a.pendingUpdates[:0]
	}
	a.updatesMu.Unlock()

	if updatesToSend != nil {
		a.engine.Send(a.broadcasterPID, BroadcastUpdatesCommand{Updates: updatesToSend}, a.selfPID)
	}
	a.engine.Send(a.broadcasterPID, BroadcastStateCommand{State: a.createStateSnapshot()}, a.selfPID)
}

// applyMatchEvents translates simulation events into wire updates and drives
// the end-of-match sequence.
func (a *GameActor) applyMatchEvents(ctx bollywood.Context, events []interface{}) {
	for _, event := range events {
		switch e := event.(type) {
		case GoalScoredEvent:
			a.addUpdate(&ScoreUpdateMessage{
				MessageType: "scoreUpdate",
				Scorer:      e.Scorer,
				Scores:      e.Scores,
				Rally:       e.Rally,
			})
		case MatchOverEvent:
			a.finishMatch(ctx, e)
		default:
			fmt.Printf("GameActor %s: Unknown match event type %T\n", a.selfPID, e)
		}
	}
}

// finishMatch broadcasts the final tallies, tells the room manager the room
// is done, and stops this actor.
func (a *GameActor) finishMatch(ctx bollywood.Context, e MatchOverEvent) {
	if !a.gameOver.CompareAndSwap(false, true) {
		return
	}
	a.isStopping.CompareAndSwap(false, true)
	fmt.Printf("GameActor %s: GAME_OVER - Winner: player %d (%d x %d)\n", a.selfPID, e.Winner, e.Scores[0], e.Scores[1])

	// Flush whatever is queued, including the final scoreUpdate, before the
	// game-over message closes the connections.
	a.handleBroadcastTick(ctx)

	if a.broadcasterPID != nil {
		roomPID := ""
		if a.selfPID != nil {
			roomPID = a.selfPID.String()
		}
		a.engine.Send(a.broadcasterPID, GameOverMessage{
			MessageType: "gameOver",
			WinnerIndex: e.Winner,
			FinalScores: e.Scores,
			Stats:       e.Stats,
			RoomPID:     roomPID,
		}, a.selfPID)
	}

	if a.roomManagerPID != nil {
		a.engine.Send(a.roomManagerPID, GameRoomEmpty{RoomPID: a.selfPID}, nil)
	} else if a.engine != nil && a.selfPID != nil {
		a.engine.Stop(a.selfPID)
	}
}
