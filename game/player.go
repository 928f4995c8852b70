package game

import (
	"github.com/lguibr/volley/utils"
)

// Player is the wire-visible identity of a seated player.
type Player struct {
	Index int    `json:"index"`
	Id    string `json:"ownerId"`
	Color [3]int `json:"color"`
}

func CreatePlayer(index int, id string) *Player {
	return &Player{
		Index: index,
		Id:    id,
		Color: utils.NewRandomColor(),
	}
}
