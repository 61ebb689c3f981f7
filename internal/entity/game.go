package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusTied       Status = "tied"
)

// State is the externally visible game state: in progress, won by Winner, or tied.
type State struct {
	Status Status `json:"status"`
	Winner Player `json:"winner,omitempty"`
}

func (that State) IsTerminal() bool {
	return that.Status == StatusWon || that.Status == StatusTied
}

// Game is the record of one game session. A restart creates a new Game, it never resets one.
type Game struct {
	ID           string         `json:"id"`
	Board        *Board         `json:"board"`
	Participants [2]Participant `json:"participants"`
	Turn         Player         `json:"turn"`
	Status       Status         `json:"status"`
	Winner       Player         `json:"winner,omitempty"`
	WinningLine  []Position     `json:"winning_line,omitempty"`
	MoveCount    int            `json:"move_count"`
	LastMove     *Position      `json:"last_move,omitempty"`
}

func NewGame(id string, board *Board, firstColor, secondColor string) *Game {
	return &Game{
		ID:    id,
		Board: board,
		Participants: [2]Participant{
			{Player: Player1, Color: firstColor},
			{Player: Player2, Color: secondColor},
		},
		Turn:   Player1,
		Status: StatusInProgress,
	}
}

func (that *Game) State() State {
	return State{Status: that.Status, Winner: that.Winner}
}

// Participant returns the participant playing as player.
func (that *Game) Participant(player Player) (Participant, bool) {
	for _, participant := range that.Participants {
		if participant.Player == player {
			return participant, true
		}
	}

	return Participant{}, false
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusTied
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) ConfirmInProgress() error {
	switch that.Status {
	case StatusInProgress:
		return nil
	case StatusWon, StatusTied:
		return apperror.ErrGameAlreadyOver
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) Clone() *Game {
	clone := *that

	if that.Board != nil {
		clone.Board = that.Board.Clone()
	}

	if that.WinningLine != nil {
		clone.WinningLine = append([]Position(nil), that.WinningLine...)
	}

	if that.LastMove != nil {
		lastMove := *that.LastMove
		clone.LastMove = &lastMove
	}

	return &clone
}
