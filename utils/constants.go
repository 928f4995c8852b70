package utils

const (
	MaxPlayers = 2

	LeftPlayerIndex  = 0
	RightPlayerIndex = 1
)

// Internal paddle direction names. The empty string means "not moving".
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionNone = ""
)
