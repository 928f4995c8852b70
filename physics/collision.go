package physics

import "math"

// BoundingBox is an axis-aligned box in screen coordinates (y grows down),
// so Bottom >= Top and Right >= Left.
type BoundingBox struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 {
	return b.Bottom - b.Top
}

// Expand grows the box outward by margin on all sides. This is the Minkowski
// sum of the box and a circle of that radius, reduced to a point test.
func (b BoundingBox) Expand(margin float64) BoundingBox {
	return BoundingBox{
		Left:   b.Left - margin,
		Right:  b.Right + margin,
		Top:    b.Top - margin,
		Bottom: b.Bottom + margin,
	}
}

// ContainsPoint reports whether the point lies inside or on the box.
func (b BoundingBox) ContainsPoint(p Vector2D) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// OverlapResult describes a discrete circle/box overlap.
type OverlapResult struct {
	Collided     bool
	Normal       Vector2D // Unit vector pointing out of the box toward the circle
	Penetration  float64
	ContactPoint Vector2D // Closest point on the box to the circle center
}

// CheckCircleAABBOverlap clamps the circle center to the box to find the
// closest point and reports penetration along the separating normal. When the
// center is inside the box the normal is taken along the axis of least
// penetration.
func CheckCircleAABBOverlap(center Vector2D, radius float64, box BoundingBox) OverlapResult {
	closest := Vector2D{
		X: math.Max(box.Left, math.Min(center.X, box.Right)),
		Y: math.Max(box.Top, math.Min(center.Y, box.Bottom)),
	}
	delta := center.Sub(closest)
	distSq := delta.LengthSquared()

	if distSq > radius*radius {
		return OverlapResult{}
	}

	if distSq > 0 {
		dist := math.Sqrt(distSq)
		return OverlapResult{
			Collided:     true,
			Normal:       delta.Scale(1 / dist),
			Penetration:  radius - dist,
			ContactPoint: closest,
		}
	}

	// Center inside the box: push out along the shallowest axis.
	left := center.X - box.Left
	right := box.Right - center.X
	top := center.Y - box.Top
	bottom := box.Bottom - center.Y

	min := left
	normal := Vector2D{X: -1}
	if right < min {
		min = right
		normal = Vector2D{X: 1}
	}
	if top < min {
		min = top
		normal = Vector2D{Y: -1}
	}
	if bottom < min {
		min = bottom
		normal = Vector2D{Y: 1}
	}
	return OverlapResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  radius + min,
		ContactPoint: closest,
	}
}

// SweepResult describes a continuous collision along one step of movement.
type SweepResult struct {
	Hit     bool
	Time    float64  // Time of impact within the step, in [0, 1]
	Normal  Vector2D // Axis-aligned unit normal of the face that was entered
	Contact Vector2D // Circle center at the time of impact
}

// SweepCircleVsMovingRect finds the first time of impact between a circle
// moving by disp and a rectangle moving by rectDisp over the same step. The
// test runs in the rectangle's reference frame against the box expanded by
// the circle radius, solving slab entry/exit times per axis. The entry axis
// with the later entry time carries the collision normal.
func SweepCircleVsMovingRect(start, disp Vector2D, radius float64, rect BoundingBox, rectDisp Vector2D) SweepResult {
	expanded := rect.Expand(radius)

	// Already overlapping at the start of the step.
	if expanded.ContainsPoint(start) {
		overlap := CheckCircleAABBOverlap(start, radius, rect)
		normal := overlap.Normal
		if normal == (Vector2D{}) {
			normal = Vector2D{X: -1}
		}
		return SweepResult{Hit: true, Time: 0, Normal: normal, Contact: start}
	}

	rel := disp.Sub(rectDisp)
	if rel.X == 0 && rel.Y == 0 {
		return SweepResult{}
	}

	enterX, exitX := slabInterval(start.X, rel.X, expanded.Left, expanded.Right)
	enterY, exitY := slabInterval(start.Y, rel.Y, expanded.Top, expanded.Bottom)

	enter := math.Max(enterX, enterY)
	exit := math.Min(exitX, exitY)
	if enter > exit || exit < 0 || enter > 1 {
		return SweepResult{}
	}

	var normal Vector2D
	if enterX > enterY {
		if rel.X > 0 {
			normal = Vector2D{X: -1}
		} else {
			normal = Vector2D{X: 1}
		}
	} else {
		if rel.Y > 0 {
			normal = Vector2D{Y: -1}
		} else {
			normal = Vector2D{Y: 1}
		}
	}

	t := math.Max(enter, 0)
	return SweepResult{
		Hit:     true,
		Time:    t,
		Normal:  normal,
		Contact: start.Add(disp.Scale(t)),
	}
}

// slabInterval returns the entry/exit times of a 1D ray through one slab.
// A ray parallel to the slab yields an infinite interval when inside it and
// an empty one when outside.
func slabInterval(origin, delta, min, max float64) (float64, float64) {
	if delta == 0 {
		if origin < min || origin > max {
			return math.Inf(1), math.Inf(-1)
		}
		return math.Inf(-1), math.Inf(1)
	}
	t1 := (min - origin) / delta
	t2 := (max - origin) / delta
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2
}

// ReflectVelocity mirrors v across the plane defined by the unit normal n.
func ReflectVelocity(v, n Vector2D) Vector2D {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// DeflectionForImpact maps a relative impact position along the paddle
// (0 at the very top, 1 at the very bottom) to a signed deflection modifier.
// Impacts inside the top zone interpolate linearly from -maxDeflection at the
// extreme to zero at the zone boundary; the bottom zone is symmetric; the
// middle band deflects nothing.
func DeflectionForImpact(relative, zoneSize, maxDeflection float64) float64 {
	if zoneSize <= 0 || maxDeflection == 0 {
		return 0
	}
	if relative < 0 {
		relative = 0
	} else if relative > 1 {
		relative = 1
	}
	if relative < zoneSize {
		return -maxDeflection * (zoneSize - relative) / zoneSize
	}
	if relative > 1-zoneSize {
		return maxDeflection * (relative - (1 - zoneSize)) / zoneSize
	}
	return 0
}

// ApplyPaddleDeflection rotates an already-reflected velocity by the angular
// deflection for the given impact position, preserving its magnitude.
func ApplyPaddleDeflection(v Vector2D, relativeImpact, zoneSize, maxDeflection float64) Vector2D {
	d := DeflectionForImpact(relativeImpact, zoneSize, maxDeflection)
	if d == 0 {
		return v
	}
	return v.Rotate(d * math.Pi)
}

// CorrectPosition returns the circle center at the contact time pushed a
// small epsilon along the collision normal, so the next step does not start
// re-penetrated.
func CorrectPosition(start, disp Vector2D, timeOfImpact float64, normal Vector2D, epsilon float64) Vector2D {
	return start.Add(disp.Scale(timeOfImpact)).Add(normal.Scale(epsilon))
}
