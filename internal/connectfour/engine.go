package connectfour

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// Engine drives one game session through its move protocol. It is not safe for concurrent use.
type Engine struct {
	game *entity.Game
}

// NewGame creates an engine for a fresh game. The first participant moves first.
func NewGame(id string, first, second entity.Participant, height, width int) (*Engine, error) {
	if first.Color == "" || second.Color == "" || first.Color == second.Color {
		return nil, fmt.Errorf("%w: colors %q and %q", apperror.ErrInvalidParticipants, first.Color, second.Color)
	}

	board, err := entity.NewBoard(height, width)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return NewEngine(entity.NewGame(id, board, first.Color, second.Color)), nil
}

// NewEngine wraps an existing game record, for example one loaded from storage.
func NewEngine(game *entity.Game) *Engine {
	return &Engine{game: game}
}

func (that *Engine) Game() *entity.Game {
	return that.game
}

func (that *Engine) CurrentPlayer() entity.Player {
	return that.game.Turn
}

func (that *Engine) CurrentParticipant() entity.Participant {
	participant, _ := that.game.Participant(that.game.Turn)
	return participant
}

func (that *Engine) State() entity.State {
	return that.game.State()
}

// ApplyMove drops the current player's piece into column. The move either applies fully
// or is rejected without touching the game.
func (that *Engine) ApplyMove(column int) MoveResult {
	game := that.game

	if err := game.ConfirmInProgress(); err != nil {
		return rejected(column, err)
	}

	if !game.Board.HasColumn(column) {
		return rejected(column, apperror.ErrInvalidColumn)
	}

	row, ok := game.Board.FindDropRow(column)
	if !ok {
		return rejected(column, apperror.ErrColumnFull)
	}

	player := game.Turn
	game.Board.Place(row, column, player)
	game.MoveCount++
	game.LastMove = &entity.Position{Row: row, Column: column}

	if line, won := CheckWin(game.Board, player); won {
		game.Status = entity.StatusWon
		game.Winner = player
		game.WinningLine = line

		result := placed(OutcomePlacedAndWon, row, column, player)
		result.Line = line
		return result
	}

	if game.Board.IsFull() {
		game.Status = entity.StatusTied
		return placed(OutcomePlacedAndTied, row, column, player)
	}

	game.Turn = player.Other()

	return placed(OutcomePlaced, row, column, player)
}
