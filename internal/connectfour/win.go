package connectfour

import "github.com/rocketscienceinc/connectfour-backend/internal/entity"

// WinLength is the number of aligned pieces that wins a game.
const WinLength = 4

type direction struct {
	dRow, dColumn int
}

// directions are tested in this order for every start cell.
var directions = [...]direction{
	{dRow: 0, dColumn: 1},  // horizontal
	{dRow: 1, dColumn: 0},  // vertical
	{dRow: 1, dColumn: 1},  // diagonal down-right
	{dRow: 1, dColumn: -1}, // diagonal down-left
}

// CheckWin scans every cell of the board as a line start, rows top to bottom and columns
// left to right, and returns the first line of WinLength cells owned by player.
func CheckWin(board *entity.Board, player entity.Player) ([]entity.Position, bool) {
	if !player.IsValid() {
		return nil, false
	}

	for row := 0; row < board.Height; row++ {
		for column := 0; column < board.Width; column++ {
			for _, dir := range directions {
				if line, ok := lineAt(board, player, row, column, dir); ok {
					return line, true
				}
			}
		}
	}

	return nil, false
}

func lineAt(board *entity.Board, player entity.Player, row, column int, dir direction) ([]entity.Position, bool) {
	line := make([]entity.Position, 0, WinLength)

	for step := 0; step < WinLength; step++ {
		r, c := row+step*dir.dRow, column+step*dir.dColumn
		if !board.InBounds(r, c) || board.Cells[r][c] != player {
			return nil, false
		}

		line = append(line, entity.Position{Row: r, Column: c})
	}

	return line, true
}
