package entity

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

const (
	DefaultHeight = 6
	DefaultWidth  = 7

	MaxDimension = 32
)

// Position addresses a cell as [row][column], row 0 being the top row.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Board is a fixed-size grid of cells. Pieces fall toward the highest row index,
// so occupied cells of a column always form a contiguous run from the bottom.
type Board struct {
	Height int        `json:"height"`
	Width  int        `json:"width"`
	Cells  [][]Player `json:"cells"`
}

func NewBoard(height, width int) (*Board, error) {
	if height < 1 || height > MaxDimension || width < 1 || width > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidBoardSize, height, width)
	}

	cells := make([][]Player, height)
	for row := range cells {
		cells[row] = make([]Player, width)
	}

	return &Board{
		Height: height,
		Width:  width,
		Cells:  cells,
	}, nil
}

// FindDropRow returns the lowest empty row of the column, or false when the column is full.
func (that *Board) FindDropRow(column int) (int, bool) {
	if !that.HasColumn(column) {
		return 0, false
	}

	for row := that.Height - 1; row >= 0; row-- {
		if that.Cells[row][column] == NoPlayer {
			return row, true
		}
	}

	return 0, false
}

// Place marks the cell as owned by player. The cell must be empty and come from FindDropRow.
func (that *Board) Place(row, column int, player Player) {
	that.Cells[row][column] = player
}

func (that *Board) IsFull() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == NoPlayer {
				return false
			}
		}
	}

	return true
}

func (that *Board) HasColumn(column int) bool {
	return column >= 0 && column < that.Width
}

func (that *Board) InBounds(row, column int) bool {
	return row >= 0 && row < that.Height && that.HasColumn(column)
}

// At returns the owner of the cell, NoPlayer for empty or out-of-bounds cells.
func (that *Board) At(row, column int) Player {
	if !that.InBounds(row, column) {
		return NoPlayer
	}

	return that.Cells[row][column]
}

func (that *Board) Clone() *Board {
	cells := make([][]Player, len(that.Cells))
	for row := range that.Cells {
		cells[row] = append([]Player(nil), that.Cells[row]...)
	}

	return &Board{
		Height: that.Height,
		Width:  that.Width,
		Cells:  cells,
	}
}
