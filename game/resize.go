// File: game/resize.go
package game

// ResizeManager rescales ball and paddles when the viewport changes and
// carries the snapshot used to restore the ball across a pause. The actor
// layer debounces resize events and force-pauses the match before Apply runs,
// so the manager itself never races the simulation.
type ResizeManager struct {
	saved *BallState
}

func NewResizeManager() *ResizeManager {
	return &ResizeManager{}
}

// PauseSnapshot captures the ball's normalized state for a later resume.
func (r *ResizeManager) PauseSnapshot(ball *Ball) {
	state := ball.SaveState()
	r.saved = &state
}

// HasSnapshot reports whether a pause snapshot is being held.
func (r *ResizeManager) HasSnapshot() bool { return r.saved != nil }

// ResumeFromPause restores the held snapshot at the given viewport and drops
// it. A resume without a snapshot is a no-op.
func (r *ResizeManager) ResumeFromPause(ball *Ball, width, height int) {
	if r.saved == nil {
		return
	}
	ball.RestoreState(*r.saved, width, height)
	r.saved = nil
}

// Apply rescales the ball and paddles from the old viewport to the new one.
// While a pause snapshot is held the ball is re-derived from it instead, so
// repeated resizes during one pause never compound rounding error. Zero
// dimensions on either side skip the rescale and report false rather than
// corrupt state.
func (r *ResizeManager) Apply(ball *Ball, paddles []*Paddle, oldWidth, oldHeight, newWidth, newHeight int) bool {
	if oldWidth <= 0 || oldHeight <= 0 || newWidth <= 0 || newHeight <= 0 {
		return false
	}
	if r.saved != nil {
		ball.RestoreState(*r.saved, newWidth, newHeight)
	} else {
		ball.UpdateSizes(newWidth, newHeight)
	}
	for _, p := range paddles {
		if p != nil {
			p.UpdateDimensions(newWidth, newHeight)
		}
	}
	return true
}
