// File: game/collision.go
package game

import (
	"github.com/lguibr/volley/physics"
	"github.com/lguibr/volley/utils"
)

// HitFace identifies which side of a paddle the ball struck.
type HitFace int

const (
	FaceNone HitFace = iota
	FaceFront
	FaceTop
	FaceBottom
)

func (f HitFace) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "none"
	}
}

// CollisionResult reports the outcome of one swept ball-vs-paddle query.
// It is returned by value; no state is shared between calls.
type CollisionResult struct {
	Collided           bool
	HitFace            HitFace
	DeflectionModifier float64
	Point              physics.Vector2D // Ball center at the time of impact
	Time               float64          // Time of impact within the step, in [0, 1]
}

// CollisionManager runs the continuous ball-vs-paddle test for one match.
type CollisionManager struct {
	cfg utils.Config
}

func NewCollisionManager(cfg utils.Config) *CollisionManager {
	return &CollisionManager{cfg: cfg}
}

// CheckBallPaddleCollision sweeps the ball's movement over the last step
// against the paddle expanded by the ball radius, classifies the struck face
// from the entry axis, and computes the deflection modifier for front hits.
// deltaTime is the length of the step the ball's movement covers, used to
// turn the paddle's velocity into its displacement over the same window.
func (m *CollisionManager) CheckBallPaddleCollision(ball *Ball, paddle *Paddle, deltaTime float64) CollisionResult {
	velocity := ball.Velocity()
	if velocity == (physics.Vector2D{}) {
		return CollisionResult{}
	}

	start := ball.PrevPosition()
	disp := ball.Position().Sub(start)
	box := paddle.BoundingBox()
	expanded := box.Expand(ball.Radius)

	// A ball beyond the near edge and not moving toward it can never enter.
	if start.X <= expanded.Left && disp.X <= 0 {
		return CollisionResult{}
	}
	if start.X >= expanded.Right && disp.X >= 0 {
		return CollisionResult{}
	}

	paddleDisp := paddle.Velocity().Scale(deltaTime)
	sweep := physics.SweepCircleVsMovingRect(start, disp, ball.Radius, box, paddleDisp)
	if !sweep.Hit {
		return CollisionResult{}
	}

	face := FaceFront
	if sweep.Normal.X == 0 {
		if sweep.Normal.Y < 0 {
			face = FaceTop
		} else {
			face = FaceBottom
		}
	}

	deflection := 0.0
	if face == FaceFront {
		if height := box.Height(); height > 0 {
			relative := (sweep.Contact.Y - box.Top) / height
			deflection = physics.DeflectionForImpact(relative, m.cfg.PaddleEdgeZoneSize, m.cfg.MaxDeflection)
		}
	}

	return CollisionResult{
		Collided:           true,
		HitFace:            face,
		DeflectionModifier: deflection,
		Point:              sweep.Contact,
		Time:               sweep.Time,
	}
}

// contactNormal maps a hit face to the outward unit normal used for
// post-collision position correction. Front hits push back against the
// ball's horizontal approach.
func contactNormal(face HitFace, approach physics.Vector2D) physics.Vector2D {
	switch face {
	case FaceFront:
		if approach.X > 0 {
			return physics.Vector2D{X: -1}
		}
		return physics.Vector2D{X: 1}
	case FaceTop:
		return physics.Vector2D{Y: -1}
	case FaceBottom:
		return physics.Vector2D{Y: 1}
	default:
		return physics.Vector2D{}
	}
}
