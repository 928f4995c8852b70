// File: game/paddle_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/volley/utils"
)

func newTestPaddle(t *testing.T, index int) *Paddle {
	t.Helper()
	cfg := utils.DefaultConfig()
	p, err := NewPaddle(cfg, index, cfg.ViewportWidth, cfg.ViewportHeight)
	require.NoError(t, err)
	return p
}

func TestNewPaddleValidation(t *testing.T) {
	cfg := utils.DefaultConfig()
	_, err := NewPaddle(cfg, 0, 0, 600)
	assert.Error(t, err)
	_, err = NewPaddle(cfg, -1, 800, 600)
	assert.Error(t, err)
	_, err = NewPaddle(cfg, utils.MaxPlayers, 800, 600)
	assert.Error(t, err)
}

func TestNewPaddlePlacement(t *testing.T) {
	// Defaults: 800x600, width 0.0125*800=10, height 600/6=100, inset 0.02*800=16.
	left := newTestPaddle(t, utils.LeftPlayerIndex)
	assert.InDelta(t, 10.0, left.Width, 1e-9)
	assert.InDelta(t, 100.0, left.Height, 1e-9)
	assert.InDelta(t, 16.0, left.X, 1e-9)
	assert.InDelta(t, 250.0, left.Y, 1e-9, "paddle starts centered vertically")

	right := newTestPaddle(t, utils.RightPlayerIndex)
	assert.InDelta(t, 800-16-10, right.X, 1e-9)
}

func TestSetDirection(t *testing.T) {
	p := newTestPaddle(t, 0)

	p.SetDirection(utils.DirectionUp)
	assert.Equal(t, utils.DirectionUp, p.Direction)

	p.SetDirection(utils.DirectionDown)
	assert.Equal(t, utils.DirectionDown, p.Direction)

	p.SetDirection("sideways")
	assert.Equal(t, utils.DirectionNone, p.Direction)
}

func TestVelocityFollowsDirection(t *testing.T) {
	p := newTestPaddle(t, 0) // speed 0.8*600 = 480

	assert.Equal(t, 0.0, p.Velocity().Y)

	p.SetDirection(utils.DirectionUp)
	assert.InDelta(t, -480.0, p.Velocity().Y, 1e-9)

	p.SetDirection(utils.DirectionDown)
	assert.InDelta(t, 480.0, p.Velocity().Y, 1e-9)
}

func TestUpdateMovementClampsToField(t *testing.T) {
	p := newTestPaddle(t, 0)

	p.SetDirection(utils.DirectionUp)
	p.UpdateMovement(10) // far more than enough to hit the top
	assert.Equal(t, 0.0, p.Y)

	p.SetDirection(utils.DirectionDown)
	p.UpdateMovement(10)
	assert.InDelta(t, 500.0, p.Y, 1e-9, "bottom edge stops at field height minus paddle height")
}

func TestUpdateMovementStepsBySpeed(t *testing.T) {
	p := newTestPaddle(t, 0) // starts at y=250
	p.SetDirection(utils.DirectionDown)
	p.UpdateMovement(0.1)
	assert.InDelta(t, 298.0, p.Y, 1e-9) // 250 + 480*0.1

	p.SetDirection(utils.DirectionNone)
	p.UpdateMovement(0.1)
	assert.InDelta(t, 298.0, p.Y, 1e-9, "no direction means no motion")
}

func TestBoundingBox(t *testing.T) {
	p := newTestPaddle(t, 0)
	box := p.BoundingBox()
	assert.Equal(t, p.X, box.Left)
	assert.Equal(t, p.X+p.Width, box.Right)
	assert.Equal(t, p.Y, box.Top)
	assert.Equal(t, p.Y+p.Height, box.Bottom)
}

func TestUpdateDimensions(t *testing.T) {
	p := newTestPaddle(t, utils.RightPlayerIndex)
	p.Y = 150 // a quarter of the way down

	p.UpdateDimensions(1600, 1200)

	assert.InDelta(t, 20.0, p.Width, 1e-9)
	assert.InDelta(t, 200.0, p.Height, 1e-9)
	assert.InDelta(t, 300.0, p.Y, 1e-9, "relative vertical position is preserved")
	assert.InDelta(t, 1600-32-20, p.X, 1e-9)

	p.UpdateDimensions(0, 0)
	assert.InDelta(t, 300.0, p.Y, 1e-9, "degenerate dimensions are ignored")
}
