package apperror

import "errors"

// Move rejections. The engine reports these inside a rejected MoveResult, never as faults.
var (
	ErrInvalidColumn   = errors.New("column is out of range")
	ErrColumnFull      = errors.New("column is full")
	ErrGameAlreadyOver = errors.New("game is already over")
)

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrInvalidBoardSize    = errors.New("invalid board size")
	ErrInvalidParticipants = errors.New("invalid participants")
)
