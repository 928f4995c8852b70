// File: utils/config.go
package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds all configurable game parameters.
type Config struct {
	// Timing
	GameTickPeriod  time.Duration `json:"gameTickPeriod"`  // Time between physics ticks
	BroadcastRateHz int           `json:"broadcastRateHz"` // State broadcasts per second

	// Viewport
	ViewportWidth  int `json:"viewportWidth"`  // Initial canvas width in pixels
	ViewportHeight int `json:"viewportHeight"` // Initial canvas height in pixels

	// Ball
	BallRadiusFraction      float64 `json:"ballRadiusFraction"`      // Radius as a fraction of viewport height
	TimeToCrossSeconds      float64 `json:"timeToCrossSeconds"`      // Seconds for the ball to cross the viewport at base speed
	InitialSpeedMultiplier  float64 `json:"initialSpeedMultiplier"`  // Multiplier right after launch
	MaxSpeedMultiplier      float64 `json:"maxSpeedMultiplier"`      // Multiplier cap
	BallAccelerationRate    float64 `json:"ballAccelerationRate"`    // Multiplier increment per wall/paddle hit
	MinBallSpeed            float64 `json:"minBallSpeed"`            // Floor for non-zero speed magnitude
	LaunchAngleBaseDeg      float64 `json:"launchAngleBaseDeg"`      // Center of the launch angle range
	LaunchAngleVariationDeg float64 `json:"launchAngleVariationDeg"` // Uniform spread around the base angle

	// Paddle
	PaddleWidthFraction  float64 `json:"paddleWidthFraction"`  // Thickness as a fraction of viewport width
	PaddleHeightFraction float64 `json:"paddleHeightFraction"` // Length as a fraction of viewport height
	PaddleSpeedFactor    float64 `json:"paddleSpeedFactor"`    // Speed = factor * viewport height, per second
	PaddleEdgeFraction   float64 `json:"paddleEdgeFraction"`   // Horizontal inset from the wall as a fraction of width

	// Collision response
	PaddleEdgeZoneSize float64 `json:"paddleEdgeZoneSize"` // Fraction of paddle height forming each deflection zone
	MaxDeflection      float64 `json:"maxDeflection"`      // Deflection modifier magnitude at the paddle extremes
	ContactEpsilon     float64 `json:"contactEpsilon"`     // Push-out distance along the contact normal, pixels

	// Simulation stepping
	FixedTimeStep float64 `json:"fixedTimeStep"` // Logic sub-step length in seconds
	MaxSubSteps   int     `json:"maxSubSteps"`   // Sub-step cap per advance call
	MaxFrameDelta float64 `json:"maxFrameDelta"` // Clamp for a single frame's elapsed seconds

	// Resize
	ResizeDebounce time.Duration `json:"resizeDebounce"` // Quiet period before a resize is applied

	// Match flow
	CountdownSeconds float64 `json:"countdownSeconds"` // Delay before each launch
	WinningScore     int32   `json:"winningScore"`     // Goals needed to win the match
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		// Timing
		GameTickPeriod:  10 * time.Millisecond,
		BroadcastRateHz: 30,

		// Viewport
		ViewportWidth:  800,
		ViewportHeight: 600,

		// Ball
		BallRadiusFraction:      1.0 / 60.0, // 10px at 600
		TimeToCrossSeconds:      1.6,        // 500px/s at 800
		InitialSpeedMultiplier:  1.0,
		MaxSpeedMultiplier:      4.0,
		BallAccelerationRate:    0.1,
		MinBallSpeed:            1.0,
		LaunchAngleBaseDeg:      0,
		LaunchAngleVariationDeg: 30,

		// Paddle
		PaddleWidthFraction:  0.0125,    // 10px at 800
		PaddleHeightFraction: 1.0 / 6.0, // 100px at 600
		PaddleSpeedFactor:    0.8,
		PaddleEdgeFraction:   0.02, // 16px at 800

		// Collision response
		PaddleEdgeZoneSize: 0.25,
		MaxDeflection:      0.2, // Up to 36 degrees of added deflection
		ContactEpsilon:     0.1,

		// Simulation stepping
		FixedTimeStep: 1.0 / 120.0,
		MaxSubSteps:   5,
		MaxFrameDelta: 0.25,

		// Resize
		ResizeDebounce: 250 * time.Millisecond,

		// Match flow
		CountdownSeconds: 3.0,
		WinningScore:     5,
	}
}

// Validate reports the first configuration value that would make the
// simulation unusable.
func (c Config) Validate() error {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("config: viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	if c.BallRadiusFraction <= 0 {
		return fmt.Errorf("config: ballRadiusFraction must be positive, got %f", c.BallRadiusFraction)
	}
	if c.TimeToCrossSeconds <= 0 {
		return fmt.Errorf("config: timeToCrossSeconds must be positive, got %f", c.TimeToCrossSeconds)
	}
	if c.InitialSpeedMultiplier <= 0 || c.MaxSpeedMultiplier < c.InitialSpeedMultiplier {
		return fmt.Errorf("config: speed multiplier bounds invalid: initial %f, max %f", c.InitialSpeedMultiplier, c.MaxSpeedMultiplier)
	}
	if c.BallAccelerationRate < 0 {
		return fmt.Errorf("config: ballAccelerationRate must not be negative, got %f", c.BallAccelerationRate)
	}
	if c.PaddleWidthFraction <= 0 || c.PaddleHeightFraction <= 0 {
		return fmt.Errorf("config: paddle fractions must be positive, got %f x %f", c.PaddleWidthFraction, c.PaddleHeightFraction)
	}
	if c.PaddleEdgeZoneSize < 0 || c.PaddleEdgeZoneSize > 0.5 {
		return fmt.Errorf("config: paddleEdgeZoneSize must be in [0, 0.5], got %f", c.PaddleEdgeZoneSize)
	}
	if c.MaxDeflection < 0 || c.MaxDeflection >= 0.5 {
		return fmt.Errorf("config: maxDeflection must be in [0, 0.5), got %f", c.MaxDeflection)
	}
	if c.FixedTimeStep <= 0 {
		return fmt.Errorf("config: fixedTimeStep must be positive, got %f", c.FixedTimeStep)
	}
	if c.MaxSubSteps < 1 {
		return fmt.Errorf("config: maxSubSteps must be at least 1, got %d", c.MaxSubSteps)
	}
	if c.MaxFrameDelta < c.FixedTimeStep {
		return fmt.Errorf("config: maxFrameDelta %f is below fixedTimeStep %f", c.MaxFrameDelta, c.FixedTimeStep)
	}
	if c.WinningScore < 1 {
		return fmt.Errorf("config: winningScore must be at least 1, got %d", c.WinningScore)
	}
	return nil
}

// LoadConfig reads a JSON config file over the defaults. An empty path or a
// missing file yields the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
