package connectfour

import (
	"encoding/json"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type Outcome string

const (
	OutcomePlaced        Outcome = "placed"
	OutcomePlacedAndWon  Outcome = "placed_and_won"
	OutcomePlacedAndTied Outcome = "placed_and_tied"
	OutcomeRejected      Outcome = "rejected"
)

// MoveResult reports what ApplyMove did. Row, Column and Player are set for placements,
// Line for wins and Reason for rejections.
type MoveResult struct {
	Outcome Outcome
	Row     int
	Column  int
	Player  entity.Player
	Line    []entity.Position
	Reason  error
}

func placed(outcome Outcome, row, column int, player entity.Player) MoveResult {
	return MoveResult{
		Outcome: outcome,
		Row:     row,
		Column:  column,
		Player:  player,
	}
}

func rejected(column int, reason error) MoveResult {
	return MoveResult{
		Outcome: OutcomeRejected,
		Column:  column,
		Reason:  reason,
	}
}

// Err returns the rejection reason, nil for placements.
func (that MoveResult) Err() error {
	return that.Reason
}

func (that MoveResult) IsRejected() bool {
	return that.Outcome == OutcomeRejected
}

func (that MoveResult) IsTerminal() bool {
	return that.Outcome == OutcomePlacedAndWon || that.Outcome == OutcomePlacedAndTied
}

type moveResultJSON struct {
	Outcome Outcome           `json:"outcome"`
	Row     *int              `json:"row,omitempty"`
	Column  int               `json:"column"`
	Player  entity.Player     `json:"player,omitempty"`
	Line    []entity.Position `json:"line,omitempty"`
	Reason  string            `json:"reason,omitempty"`
}

func (that MoveResult) MarshalJSON() ([]byte, error) {
	out := moveResultJSON{
		Outcome: that.Outcome,
		Column:  that.Column,
		Player:  that.Player,
		Line:    that.Line,
	}

	if that.IsRejected() {
		if that.Reason != nil {
			out.Reason = that.Reason.Error()
		}
	} else {
		row := that.Row
		out.Row = &row
	}

	return json.Marshal(out)
}
