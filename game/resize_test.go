// File: game/resize_test.go
package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/volley/utils"
)

func TestResizeManagerSnapshotLifecycle(t *testing.T) {
	cfg := utils.DefaultConfig()
	ball := newTestBall(t, cfg)
	ball.Vx = 300
	ball.Vy = 400

	r := NewResizeManager()
	assert.False(t, r.HasSnapshot())

	r.PauseSnapshot(ball)
	assert.True(t, r.HasSnapshot())

	// Scramble the live ball, then the resume must bring it back.
	ball.X = 0
	ball.Y = 0
	ball.Vx = 0
	ball.Vy = 0

	r.ResumeFromPause(ball, 800, 600)
	assert.False(t, r.HasSnapshot(), "the snapshot is dropped on resume")
	assert.InDelta(t, 400.0, ball.X, 1e-6)
	assert.InDelta(t, 300.0, ball.Y, 1e-6)
	assert.InDelta(t, ball.CurrentSpeed(), math.Hypot(ball.Vx, ball.Vy), 1e-6)
}

func TestResizeManagerResumeWithoutSnapshotIsNoop(t *testing.T) {
	cfg := utils.DefaultConfig()
	ball := newTestBall(t, cfg)
	ball.Vx = 123

	NewResizeManager().ResumeFromPause(ball, 800, 600)
	assert.Equal(t, 123.0, ball.Vx)
}

func TestResizeManagerApplyRescalesAll(t *testing.T) {
	cfg := utils.DefaultConfig()
	ball := newTestBall(t, cfg)
	ball.Vx = 500
	left := newTestPaddle(t, utils.LeftPlayerIndex)
	right := newTestPaddle(t, utils.RightPlayerIndex)

	r := NewResizeManager()
	ok := r.Apply(ball, []*Paddle{left, right}, 800, 600, 1600, 1200)

	require.True(t, ok)
	assert.InDelta(t, 800.0, ball.X, 1e-9)
	assert.InDelta(t, 20.0, ball.Radius, 1e-9)
	assert.InDelta(t, 200.0, left.Height, 1e-9)
	assert.InDelta(t, 1600-32-20, right.X, 1e-9)
}

func TestResizeManagerApplyRejectsDegenerateDimensions(t *testing.T) {
	cfg := utils.DefaultConfig()
	ball := newTestBall(t, cfg)
	r := NewResizeManager()

	assert.False(t, r.Apply(ball, nil, 0, 600, 1600, 1200))
	assert.False(t, r.Apply(ball, nil, 800, 600, 1600, 0))
	assert.Equal(t, 400.0, ball.X, "a rejected resize leaves the ball untouched")
}

func TestResizeManagerApplyUsesSnapshotWhilePaused(t *testing.T) {
	cfg := utils.DefaultConfig()
	ball := newTestBall(t, cfg)
	ball.X = 200 // a quarter across
	ball.Vx = 500

	r := NewResizeManager()
	r.PauseSnapshot(ball)

	// Two resizes in a row both re-derive from the one snapshot, so the
	// second is exact rather than a rescale of a rescale.
	require.True(t, r.Apply(ball, nil, 800, 600, 1234, 777))
	require.True(t, r.Apply(ball, nil, 1234, 777, 400, 300))

	assert.InDelta(t, 100.0, ball.X, 1e-6)
	assert.True(t, r.HasSnapshot(), "the snapshot survives resizes until resume")
	assert.InDelta(t, ball.CurrentSpeed(), math.Hypot(ball.Vx, ball.Vy), 1e-6)
}

func TestResizeManagerApplyNilPaddleIsSafe(t *testing.T) {
	cfg := utils.DefaultConfig()
	ball := newTestBall(t, cfg)
	r := NewResizeManager()
	assert.True(t, r.Apply(ball, []*Paddle{nil, nil}, 800, 600, 1600, 1200))
}
