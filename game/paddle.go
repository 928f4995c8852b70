// File: game/paddle.go
package game

import (
	"fmt"

	"github.com/lguibr/volley/physics"
	"github.com/lguibr/volley/utils"
)

// Paddle owns position, dimensions and movement state for one player's
// paddle. Index 0 guards the left wall, index 1 the right wall.
type Paddle struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Index     int     `json:"index"`
	Direction string  `json:"direction"` // "up", "down" or "" for holding still

	cfg          utils.Config
	speed        float64
	canvasHeight float64
}

// NewPaddle creates a paddle centered vertically on its wall. Non-positive
// viewport dimensions or an out-of-range index fail construction.
func NewPaddle(cfg utils.Config, index, width, height int) (*Paddle, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("paddle %d: viewport must be positive, got %dx%d", index, width, height)
	}
	if index < 0 || index >= utils.MaxPlayers {
		return nil, fmt.Errorf("paddle index %d out of range [0, %d)", index, utils.MaxPlayers)
	}
	p := &Paddle{
		Index: index,
		cfg:   cfg,
	}
	p.applyViewport(float64(width), float64(height))
	p.Y = (p.canvasHeight - p.Height) / 2
	return p, nil
}

// applyViewport re-derives dimensions, speed and the wall-side x position.
func (p *Paddle) applyViewport(width, height float64) {
	p.Width = p.cfg.PaddleWidthFraction * width
	p.Height = p.cfg.PaddleHeightFraction * height
	p.speed = p.cfg.PaddleSpeedFactor * height
	p.canvasHeight = height

	inset := p.cfg.PaddleEdgeFraction * width
	if p.Index == utils.LeftPlayerIndex {
		p.X = inset
	} else {
		p.X = width - inset - p.Width
	}
}

// SetDirection updates the movement direction. Unknown values stop the paddle.
func (p *Paddle) SetDirection(direction string) {
	switch direction {
	case utils.DirectionUp, utils.DirectionDown:
		p.Direction = direction
	default:
		p.Direction = utils.DirectionNone
	}
}

// UpdateMovement advances the paddle along its wall, clamped to the field.
func (p *Paddle) UpdateMovement(deltaTime float64) {
	v := p.Velocity()
	if v.Y == 0 {
		return
	}
	p.Y = utils.Clamp(p.Y+v.Y*deltaTime, 0, p.canvasHeight-p.Height)
}

// Velocity returns the instantaneous velocity implied by the current
// direction. This is what the swept collision test treats as the paddle's
// motion for the frame.
func (p *Paddle) Velocity() physics.Vector2D {
	switch p.Direction {
	case utils.DirectionUp:
		return physics.Vector2D{Y: -p.speed}
	case utils.DirectionDown:
		return physics.Vector2D{Y: p.speed}
	default:
		return physics.Vector2D{}
	}
}

// BoundingBox returns the paddle's hitbox for the collision query.
func (p *Paddle) BoundingBox() physics.BoundingBox {
	return physics.BoundingBox{
		Left:   p.X,
		Right:  p.X + p.Width,
		Top:    p.Y,
		Bottom: p.Y + p.Height,
	}
}

// UpdateDimensions rescales the paddle for a new viewport, preserving its
// relative vertical position. Zero dimensions skip the rescale.
func (p *Paddle) UpdateDimensions(newWidth, newHeight int) {
	if newWidth <= 0 || newHeight <= 0 || p.canvasHeight == 0 {
		return
	}
	heightRatio := float64(newHeight) / p.canvasHeight
	p.Y *= heightRatio
	p.applyViewport(float64(newWidth), float64(newHeight))
	p.Y = utils.Clamp(p.Y, 0, p.canvasHeight-p.Height)
}
