// File: game/player_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatePlayer(t *testing.T) {
	player := CreatePlayer(1, "owner-abc")

	assert.Equal(t, 1, player.Index)
	assert.Equal(t, "owner-abc", player.Id)
	for _, channel := range player.Color {
		assert.GreaterOrEqual(t, channel, 0)
		assert.LessOrEqual(t, channel, 255)
	}
}
