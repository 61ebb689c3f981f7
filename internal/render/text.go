// Package render draws games as plain text for terminals and text endpoints.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const emptyCell = '.'

var marks = map[entity.Player]rune{
	entity.Player1: 'X',
	entity.Player2: 'O',
}

// Board draws the grid top row first, under a header of column indexes.
// Cells of the winning line are bracketed.
func Board(board *entity.Board, winningLine []entity.Position) string {
	winning := make(map[entity.Position]bool, len(winningLine))
	for _, pos := range winningLine {
		winning[pos] = true
	}

	var sb strings.Builder

	for column := 0; column < board.Width; column++ {
		sb.WriteString(cell(strconv.Itoa(column%10), false))
	}
	sb.WriteByte('\n')

	for row := 0; row < board.Height; row++ {
		for column := 0; column < board.Width; column++ {
			pos := entity.Position{Row: row, Column: column}
			sb.WriteString(cell(string(mark(board.At(row, column))), winning[pos]))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Status returns the one-line announcement for the game state.
func Status(game *entity.Game) string {
	switch game.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Player %s won!", color(game, game.Winner))
	case entity.StatusTied:
		return "Tie!"
	default:
		return fmt.Sprintf("Player %s (%c) to move", color(game, game.Turn), mark(game.Turn))
	}
}

// Game draws the board followed by the status line.
func Game(game *entity.Game) string {
	return Board(game.Board, game.WinningLine) + Status(game) + "\n"
}

func cell(content string, highlighted bool) string {
	if highlighted {
		return "[" + content + "]"
	}

	return " " + content + " "
}

func mark(player entity.Player) rune {
	if m, ok := marks[player]; ok {
		return m
	}

	return emptyCell
}

func color(game *entity.Game, player entity.Player) string {
	if participant, ok := game.Participant(player); ok {
		return participant.Color
	}

	return player.String()
}
