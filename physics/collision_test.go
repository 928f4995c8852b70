package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func box(left, top, right, bottom float64) BoundingBox {
	return BoundingBox{Left: left, Top: top, Right: right, Bottom: bottom}
}

func TestBoundingBoxExpand(t *testing.T) {
	b := box(10, 20, 30, 60).Expand(5)
	assert.Equal(t, box(5, 15, 35, 65), b)
	assert.Equal(t, 30.0, b.Width())
	assert.Equal(t, 50.0, b.Height())
}

func TestCheckCircleAABBOverlap(t *testing.T) {
	paddle := box(100, 100, 110, 200)

	t.Run("no overlap", func(t *testing.T) {
		result := CheckCircleAABBOverlap(Vector2D{X: 80, Y: 150}, 10, paddle)
		assert.False(t, result.Collided)
	})

	t.Run("side contact reports outward normal and depth", func(t *testing.T) {
		result := CheckCircleAABBOverlap(Vector2D{X: 95, Y: 150}, 10, paddle)
		assert.True(t, result.Collided)
		assert.Equal(t, Vector2D{X: -1}, result.Normal)
		assert.InDelta(t, 5, result.Penetration, 1e-12)
		assert.Equal(t, Vector2D{X: 100, Y: 150}, result.ContactPoint)
	})

	t.Run("center inside picks shallowest axis", func(t *testing.T) {
		result := CheckCircleAABBOverlap(Vector2D{X: 102, Y: 150}, 4, paddle)
		assert.True(t, result.Collided)
		assert.Equal(t, Vector2D{X: -1}, result.Normal)
	})
}

func TestSweepCircleVsMovingRect(t *testing.T) {
	paddle := box(100, 100, 110, 200)

	t.Run("fast crossing never tunnels", func(t *testing.T) {
		// One frame's displacement covers the entire paddle span.
		start := Vector2D{X: 0, Y: 150}
		disp := Vector2D{X: 1000, Y: 0}
		result := SweepCircleVsMovingRect(start, disp, 5, paddle, Vector2D{})
		assert.True(t, result.Hit)
		assert.Equal(t, Vector2D{X: -1}, result.Normal)
		assert.InDelta(t, 95.0/1000.0, result.Time, 1e-9)
		assert.InDelta(t, 95, result.Contact.X, 1e-9)
	})

	t.Run("miss above the box", func(t *testing.T) {
		start := Vector2D{X: 0, Y: 50}
		disp := Vector2D{X: 1000, Y: 0}
		result := SweepCircleVsMovingRect(start, disp, 5, paddle, Vector2D{})
		assert.False(t, result.Hit)
	})

	t.Run("entry beyond the step is ignored", func(t *testing.T) {
		start := Vector2D{X: 0, Y: 150}
		disp := Vector2D{X: 50, Y: 0}
		result := SweepCircleVsMovingRect(start, disp, 5, paddle, Vector2D{})
		assert.False(t, result.Hit)
	})

	t.Run("vertical hit carries y normal", func(t *testing.T) {
		start := Vector2D{X: 105, Y: 50}
		disp := Vector2D{X: 0, Y: 100}
		result := SweepCircleVsMovingRect(start, disp, 5, paddle, Vector2D{})
		assert.True(t, result.Hit)
		assert.Equal(t, Vector2D{Y: -1}, result.Normal)
	})

	t.Run("moving rect closes the gap", func(t *testing.T) {
		// Ball drifts slowly; the paddle's own displacement makes up the rest.
		start := Vector2D{X: 80, Y: 50}
		disp := Vector2D{X: 0, Y: 30}
		rectDisp := Vector2D{Y: -60}
		moving := box(70, 120, 90, 220)
		result := SweepCircleVsMovingRect(start, disp, 5, moving, rectDisp)
		assert.True(t, result.Hit)
		assert.Equal(t, Vector2D{Y: -1}, result.Normal)
	})

	t.Run("already overlapping resolves at time zero", func(t *testing.T) {
		start := Vector2D{X: 98, Y: 150}
		result := SweepCircleVsMovingRect(start, Vector2D{X: 10}, 5, paddle, Vector2D{})
		assert.True(t, result.Hit)
		assert.Equal(t, 0.0, result.Time)
		assert.NotEqual(t, Vector2D{}, result.Normal)
	})

	t.Run("stationary relative motion outside the box misses", func(t *testing.T) {
		result := SweepCircleVsMovingRect(Vector2D{X: 0, Y: 150}, Vector2D{X: 5}, 5, paddle, Vector2D{X: 5})
		assert.False(t, result.Hit)
	})
}

func TestReflectVelocity(t *testing.T) {
	v := Vector2D{X: 300, Y: 100}
	reflected := ReflectVelocity(v, Vector2D{X: -1})
	assert.Equal(t, Vector2D{X: -300, Y: 100}, reflected)
	assert.InDelta(t, v.Length(), reflected.Length(), 1e-12)
}

func TestDeflectionForImpact(t *testing.T) {
	const zone = 0.25
	const max = 0.2

	cases := []struct {
		name     string
		relative float64
		want     float64
	}{
		{"very top", 0.0, -max},
		{"half into top zone", 0.125, -max / 2},
		{"top zone boundary", 0.25, 0},
		{"middle band", 0.5, 0},
		{"bottom zone boundary", 0.75, 0},
		{"half into bottom zone", 0.875, max / 2},
		{"very bottom", 1.0, max},
		{"clamped below", -0.3, -max},
		{"clamped above", 1.3, max},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DeflectionForImpact(tc.relative, zone, max), 1e-12)
		})
	}

	t.Run("degenerate zone yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, DeflectionForImpact(0.0, 0, max))
	})
}

func TestApplyPaddleDeflection(t *testing.T) {
	v := Vector2D{X: -300, Y: 0}

	t.Run("center hit leaves velocity alone", func(t *testing.T) {
		assert.Equal(t, v, ApplyPaddleDeflection(v, 0.5, 0.25, 0.2))
	})

	t.Run("edge hit rotates, preserving speed", func(t *testing.T) {
		out := ApplyPaddleDeflection(v, 0.0, 0.25, 0.2)
		assert.NotEqual(t, v, out)
		assert.InDelta(t, v.Length(), out.Length(), 1e-9)
		wantAngle := math.Pi + (-0.2)*math.Pi
		assert.InDelta(t, math.Mod(wantAngle+2*math.Pi, 2*math.Pi), math.Mod(out.Angle()+2*math.Pi, 2*math.Pi), 1e-9)
	})
}

func TestCorrectPosition(t *testing.T) {
	start := Vector2D{X: 0, Y: 150}
	disp := Vector2D{X: 100, Y: 0}
	corrected := CorrectPosition(start, disp, 0.5, Vector2D{X: -1}, 0.1)
	assert.InDelta(t, 49.9, corrected.X, 1e-12)
	assert.InDelta(t, 150, corrected.Y, 1e-12)
}
