package entity

import "fmt"

// Player is the tagged index of a competitor. NoPlayer marks an empty cell.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Other returns the opponent of that player.
func (that Player) Other() Player {
	switch that {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (that Player) IsValid() bool {
	return that == Player1 || that == Player2
}

func (that Player) String() string {
	switch that {
	case NoPlayer:
		return "none"
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return fmt.Sprintf("player(%d)", int(that))
	}
}

// Participant binds a player slot to the color label it is rendered with.
type Participant struct {
	Player Player `json:"player"`
	Color  string `json:"color"`
}
