package utils

import (
	"math"
	"math/rand"
)

// DirectionFromString maps a client arrow-key name to the internal paddle
// direction. Unknown names map to DirectionNone.
func DirectionFromString(direction string) string {
	switch direction {
	case "ArrowUp":
		return DirectionUp
	case "ArrowDown":
		return DirectionDown
	default:
		return DirectionNone
	}
}

// Clamp limits v to the inclusive range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// NewRandomColor returns a random RGB triple for a player.
func NewRandomColor() [3]int {
	return [3]int{rand.Intn(256), rand.Intn(256), rand.Intn(256)}
}
