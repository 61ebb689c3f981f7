package usecase

import (
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	EventSnapshot = "game:snapshot"
	EventMove     = "game:move"
	EventRestart  = "game:restart"
	EventAbandon  = "game:abandon"
)

// Event is what presentation layers receive about a game session.
type Event struct {
	Type       string                  `json:"type"`
	Game       *entity.Game            `json:"game,omitempty"`
	Result     *connectfour.MoveResult `json:"result,omitempty"`
	NextGameID string                  `json:"next_game_id,omitempty"`
}
