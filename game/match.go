// File: game/match.go
package game

import (
	"github.com/lguibr/volley/physics"
	"github.com/lguibr/volley/utils"
)

// GameState gates what the simulation does each step.
type GameState string

const (
	StateCountdown GameState = "countdown"
	StatePlaying   GameState = "playing"
	StatePaused    GameState = "paused"
	StateGameOver  GameState = "gameOver"
)

// GoalScoredEvent is emitted by Advance when a rally ends in a goal.
type GoalScoredEvent struct {
	Scorer int
	Scores [utils.MaxPlayers]int32
	Rally  RallyRecord
}

// MatchOverEvent is emitted by Advance when a goal reaches the winning score.
type MatchOverEvent struct {
	Winner int
	Scores [utils.MaxPlayers]int32
	Stats  StatsSummary
}

// Match is the single-threaded simulation of one game: a ball, two paddles,
// the collision and resize managers and the rally state machine. All state is
// mutated only through Advance and the explicit commands below; the owning
// actor serializes every call.
type Match struct {
	cfg    utils.Config
	width  int
	height int

	ball      *Ball
	paddles   [utils.MaxPlayers]*Paddle
	collision *CollisionManager
	resize    *ResizeManager
	stats     *MatchStats

	state              GameState
	stateBeforePause   GameState
	countdownRemaining float64
	rallyElapsed       float64

	scores [utils.MaxPlayers]int32
	winner int
}

// NewMatch builds a match at the configured viewport. An invalid config or
// viewport is a wiring bug and fails construction.
func NewMatch(cfg utils.Config) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	width, height := cfg.ViewportWidth, cfg.ViewportHeight

	ball, err := NewBall(cfg, width, height)
	if err != nil {
		return nil, err
	}

	m := &Match{
		cfg:       cfg,
		width:     width,
		height:    height,
		ball:      ball,
		collision: NewCollisionManager(cfg),
		resize:    NewResizeManager(),
		stats:     NewMatchStats(),
		winner:    -1,
	}
	for i := range m.paddles {
		paddle, err := NewPaddle(cfg, i, width, height)
		if err != nil {
			return nil, err
		}
		m.paddles[i] = paddle
	}
	m.beginCountdown()
	return m, nil
}

func (m *Match) beginCountdown() {
	m.state = StateCountdown
	m.countdownRemaining = m.cfg.CountdownSeconds
}

// State returns the current simulation state.
func (m *Match) State() GameState { return m.state }

// Ball returns the match's ball.
func (m *Match) Ball() *Ball { return m.ball }

// Paddle returns the paddle for the given player index, or nil out of range.
func (m *Match) Paddle(index int) *Paddle {
	if index < 0 || index >= utils.MaxPlayers {
		return nil
	}
	return m.paddles[index]
}

// Scores returns a copy of the current score line.
func (m *Match) Scores() [utils.MaxPlayers]int32 { return m.scores }

// Winner returns the winning player index, or -1 while the match runs.
func (m *Match) Winner() int { return m.winner }

// Stats returns the match statistics.
func (m *Match) Stats() *MatchStats { return m.stats }

// Width returns the current viewport width.
func (m *Match) Width() int { return m.width }

// Height returns the current viewport height.
func (m *Match) Height() int { return m.height }

// CountdownRemaining returns the seconds left before the next launch.
func (m *Match) CountdownRemaining() float64 { return m.countdownRemaining }

// SetPaddleDirection points a player's paddle up, down or nowhere.
func (m *Match) SetPaddleDirection(index int, direction string) {
	if index < 0 || index >= utils.MaxPlayers {
		return
	}
	m.paddles[index].SetDirection(direction)
}

// Advance runs the simulation for one frame's worth of elapsed seconds,
// split into fixed sub-steps bounded by the configured caps so a slow frame
// never produces a displacement the swept collision test cannot cover.
// Returned events describe goals and match completion in order.
func (m *Match) Advance(elapsed float64) []interface{} {
	if m.state == StatePaused || m.state == StateGameOver || elapsed <= 0 {
		return nil
	}
	if elapsed > m.cfg.MaxFrameDelta {
		elapsed = m.cfg.MaxFrameDelta
	}

	var events []interface{}
	remaining := elapsed
	for i := 0; i < m.cfg.MaxSubSteps && remaining > 0; i++ {
		dt := m.cfg.FixedTimeStep
		if remaining < dt {
			dt = remaining
		}
		remaining -= dt
		events = append(events, m.step(dt)...)
		if m.state == StateGameOver {
			break
		}
	}
	return events
}

// step advances the world one fixed sub-step.
func (m *Match) step(dt float64) []interface{} {
	for _, p := range m.paddles {
		p.UpdateMovement(dt)
	}

	switch m.state {
	case StateCountdown:
		m.countdownRemaining -= dt
		if m.countdownRemaining <= 0 {
			m.countdownRemaining = 0
			m.ball.Launch()
			m.stats.BeginRally()
			m.rallyElapsed = 0
			m.state = StatePlaying
		}
		return nil
	case StatePlaying:
	default:
		return nil
	}

	m.rallyElapsed += dt
	m.ball.Update(dt, m.state)

	for i, p := range m.paddles {
		result := m.collision.CheckBallPaddleCollision(m.ball, p, dt)
		if !result.Collided {
			continue
		}
		start := m.ball.PrevPosition()
		disp := m.ball.Position().Sub(start)
		normal := contactNormal(result.HitFace, disp)
		corrected := physics.CorrectPosition(start, disp, result.Time, normal, m.cfg.ContactEpsilon)
		m.ball.X = corrected.X
		m.ball.Y = corrected.Y
		m.ball.Hit(result.HitFace, result.DeflectionModifier)
		m.stats.RecordHit(i)
	}

	if !m.ball.IsDestroyed() {
		return nil
	}

	scorer := utils.LeftPlayerIndex
	if m.ball.IsHitLeftBorder() {
		scorer = utils.RightPlayerIndex
	}
	m.scores[scorer]++
	rally := m.stats.RecordGoal(scorer, m.rallyElapsed)
	m.ball.Restart()

	goal := GoalScoredEvent{Scorer: scorer, Scores: m.scores, Rally: rally}
	if m.scores[scorer] >= m.cfg.WinningScore {
		m.state = StateGameOver
		m.winner = scorer
		return []interface{}{goal, MatchOverEvent{Winner: scorer, Scores: m.scores, Stats: m.stats.Summary()}}
	}
	m.beginCountdown()
	return []interface{}{goal}
}

// Pause snapshots the ball and freezes the simulation. Pausing an already
// paused or finished match does nothing.
func (m *Match) Pause() {
	if m.state == StatePaused || m.state == StateGameOver {
		return
	}
	m.resize.PauseSnapshot(m.ball)
	m.stateBeforePause = m.state
	m.state = StatePaused
}

// Resume restores the pause snapshot at the current viewport and returns to
// the state the match was in before the pause.
func (m *Match) Resume() {
	if m.state != StatePaused {
		return
	}
	m.resize.ResumeFromPause(m.ball, m.width, m.height)
	m.state = m.stateBeforePause
}

// IsPaused reports whether the simulation is frozen.
func (m *Match) IsPaused() bool { return m.state == StatePaused }

// HandleResize rescales the world to a new viewport. Returns false when the
// dimensions are unusable and nothing was changed.
func (m *Match) HandleResize(newWidth, newHeight int) bool {
	if !m.resize.Apply(m.ball, m.paddles[:], m.width, m.height, newWidth, newHeight) {
		return false
	}
	m.width = newWidth
	m.height = newHeight
	return true
}
