package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lguibr/volley/physics"
	"github.com/lguibr/volley/utils"
)

// Ball owns position, velocity and acceleration state in pixel space.
// Velocity is in pixels per second; y grows downward.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Vx     float64 `json:"vx"`
	Vy     float64 `json:"vy"`
	Radius float64 `json:"radius"`

	cfg    utils.Config
	width  float64
	height float64

	baseSpeed       float64
	speedMultiplier float64

	destroyed     bool
	hitLeftBorder bool

	prevX float64
	prevY float64
}

// NormalizedPosition is a viewport-relative position in [0,1] on each axis.
type NormalizedPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NormalizedVelocity is a unit direction vector, or zero for a resting ball.
type NormalizedVelocity struct {
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
}

// BallState is the resolution-independent snapshot of a ball, safe to
// serialize across a resize or a pause. It is not authoritative during play.
type BallState struct {
	Position        NormalizedPosition `json:"position"`
	Velocity        NormalizedVelocity `json:"velocity"`
	SpeedMultiplier float64            `json:"speedMultiplier"`
}

// NewBall creates a resting ball centered in the given viewport. Non-positive
// viewport dimensions are a wiring bug in the caller and fail construction.
func NewBall(cfg utils.Config, width, height int) (*Ball, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ball: viewport must be positive, got %dx%d", width, height)
	}
	b := &Ball{
		cfg:             cfg,
		speedMultiplier: cfg.InitialSpeedMultiplier,
	}
	b.setViewport(float64(width), float64(height))
	b.X = b.width / 2
	b.Y = b.height / 2
	b.prevX = b.X
	b.prevY = b.Y
	return b, nil
}

// setViewport re-derives all viewport-dependent quantities.
func (b *Ball) setViewport(width, height float64) {
	b.width = width
	b.height = height
	b.Radius = b.cfg.BallRadiusFraction * height
	b.baseSpeed = width / b.cfg.TimeToCrossSeconds
}

// BaseSpeed returns the viewport-derived speed of a freshly launched ball.
func (b *Ball) BaseSpeed() float64 { return b.baseSpeed }

// SpeedMultiplier returns the cumulative acceleration factor.
func (b *Ball) SpeedMultiplier() float64 { return b.speedMultiplier }

// CurrentSpeed returns the speed the velocity magnitude is held at.
func (b *Ball) CurrentSpeed() float64 { return b.baseSpeed * b.speedMultiplier }

// IsDestroyed reports whether the ball left the field through a side wall.
func (b *Ball) IsDestroyed() bool { return b.destroyed }

// IsHitLeftBorder reports which side the ball left through. Meaningful only
// while IsDestroyed returns true.
func (b *Ball) IsHitLeftBorder() bool { return b.hitLeftBorder }

// Position returns the current center.
func (b *Ball) Position() physics.Vector2D { return physics.Vector2D{X: b.X, Y: b.Y} }

// PrevPosition returns the center at the start of the last integration step.
func (b *Ball) PrevPosition() physics.Vector2D { return physics.Vector2D{X: b.prevX, Y: b.prevY} }

// Velocity returns the current velocity.
func (b *Ball) Velocity() physics.Vector2D { return physics.Vector2D{X: b.Vx, Y: b.Vy} }

// Launch resets the speed multiplier and serves the ball at base speed with
// a uniformly random angle around the configured base, flipping the
// horizontal direction with probability one half.
func (b *Ball) Launch() {
	b.speedMultiplier = b.cfg.InitialSpeedMultiplier

	variation := utils.DegToRad(b.cfg.LaunchAngleVariationDeg)
	angle := utils.DegToRad(b.cfg.LaunchAngleBaseDeg)
	if variation > 0 {
		angle += (rand.Float64()*2 - 1) * variation
	}

	v := physics.FromAngle(angle, b.CurrentSpeed())
	if rand.Float64() < 0.5 {
		v.X = -v.X
	}
	b.Vx = v.X
	b.Vy = v.Y
}

// Update integrates the ball one step and applies boundary rules. It does
// nothing unless the match is in the playing state.
func (b *Ball) Update(deltaTime float64, state GameState) {
	if state != StatePlaying {
		return
	}
	b.prevX = b.X
	b.prevY = b.Y
	b.X += b.Vx * deltaTime
	b.Y += b.Vy * deltaTime
	b.checkBoundaries()
}

// checkBoundaries handles wall contact: top and bottom reflect and
// accelerate, left and right destroy the ball and record the scoring side.
// Any non-zero velocity below the minimum floor is scaled back up so the
// ball cannot stall from floating-point decay.
func (b *Ball) checkBoundaries() {
	if b.Y < b.Radius {
		b.Y = b.Radius
		b.Vy = math.Abs(b.Vy)
		b.Accelerate()
	} else if b.Y > b.height-b.Radius {
		b.Y = b.height - b.Radius
		b.Vy = -math.Abs(b.Vy)
		b.Accelerate()
	}

	if b.X-b.Radius <= 0 {
		b.destroyed = true
		b.hitLeftBorder = true
	} else if b.X+b.Radius >= b.width {
		b.destroyed = true
		b.hitLeftBorder = false
	}

	speed := math.Hypot(b.Vx, b.Vy)
	if speed > 0 && speed < b.cfg.MinBallSpeed {
		factor := b.cfg.MinBallSpeed / speed
		b.Vx *= factor
		b.Vy *= factor
	}
}

// Hit applies the reflection formula for the struck paddle face, rotated by
// the deflection modifier, preserving speed, then accelerates.
func (b *Ball) Hit(face HitFace, deflectionModifier float64) {
	speed := math.Hypot(b.Vx, b.Vy)
	if speed == 0 {
		return
	}
	angle := math.Atan2(b.Vy, b.Vx)

	var newAngle float64
	switch face {
	case FaceFront:
		newAngle = math.Pi - angle + deflectionModifier*math.Pi
	case FaceTop, FaceBottom:
		newAngle = -angle + deflectionModifier*math.Pi
	default:
		return
	}

	b.Vx = speed * math.Cos(newAngle)
	b.Vy = speed * math.Sin(newAngle)

	// The ball must leave away from the face it struck.
	if face == FaceTop {
		b.Vy = -math.Abs(b.Vy)
	} else if face == FaceBottom {
		b.Vy = math.Abs(b.Vy)
	}

	b.Accelerate()
}

// Accelerate bumps the speed multiplier by the configured rate up to the cap
// and rescales the velocity to the new speed, preserving direction.
func (b *Ball) Accelerate() {
	b.speedMultiplier += b.cfg.BallAccelerationRate
	if b.speedMultiplier > b.cfg.MaxSpeedMultiplier {
		b.speedMultiplier = b.cfg.MaxSpeedMultiplier
	}
	dir := b.Velocity().Normalize()
	if dir == (physics.Vector2D{}) {
		return
	}
	v := dir.Scale(b.CurrentSpeed())
	b.Vx = v.X
	b.Vy = v.Y
}

// UpdateSizes rescales the ball for a new viewport: position and velocity
// components scale independently by the width and height ratios, and radius
// and base speed are re-derived. The speed multiplier is re-anchored to the
// rescaled magnitude within its bounds. Zero dimensions on either side skip
// the rescale entirely.
func (b *Ball) UpdateSizes(newWidth, newHeight int) {
	if newWidth <= 0 || newHeight <= 0 || b.width == 0 || b.height == 0 {
		return
	}
	widthRatio := float64(newWidth) / b.width
	heightRatio := float64(newHeight) / b.height

	b.X *= widthRatio
	b.Y *= heightRatio
	b.prevX *= widthRatio
	b.prevY *= heightRatio
	b.Vx *= widthRatio
	b.Vy *= heightRatio

	b.setViewport(float64(newWidth), float64(newHeight))

	speed := math.Hypot(b.Vx, b.Vy)
	if speed == 0 || b.baseSpeed == 0 {
		return
	}
	b.speedMultiplier = utils.Clamp(speed/b.baseSpeed, b.cfg.InitialSpeedMultiplier, b.cfg.MaxSpeedMultiplier)
	dir := b.Velocity().Normalize()
	v := dir.Scale(b.CurrentSpeed())
	b.Vx = v.X
	b.Vy = v.Y
}

// SaveState captures the normalized, resolution-independent snapshot.
func (b *Ball) SaveState() BallState {
	dir := b.Velocity().Normalize()
	return BallState{
		Position:        NormalizedPosition{X: b.X / b.width, Y: b.Y / b.height},
		Velocity:        NormalizedVelocity{Dx: dir.X, Dy: dir.Y},
		SpeedMultiplier: b.speedMultiplier,
	}
}

// RestoreState re-derives absolute position and velocity from a snapshot at
// the given viewport. Non-positive dimensions keep the current viewport.
func (b *Ball) RestoreState(state BallState, width, height int) {
	if width > 0 && height > 0 {
		b.setViewport(float64(width), float64(height))
	}
	b.X = state.Position.X * b.width
	b.Y = state.Position.Y * b.height
	b.prevX = b.X
	b.prevY = b.Y
	b.speedMultiplier = utils.Clamp(state.SpeedMultiplier, b.cfg.InitialSpeedMultiplier, b.cfg.MaxSpeedMultiplier)

	dir := physics.Vector2D{X: state.Velocity.Dx, Y: state.Velocity.Dy}.Normalize()
	v := dir.Scale(b.CurrentSpeed())
	b.Vx = v.X
	b.Vy = v.Y
}

// Restart re-centers the ball with zero velocity and clears the end-of-rally
// flags, ready for the next Launch.
func (b *Ball) Restart() {
	b.X = b.width / 2
	b.Y = b.height / 2
	b.prevX = b.X
	b.prevY = b.Y
	b.Vx = 0
	b.Vy = 0
	b.destroyed = false
	b.hitLeftBorder = false
}
