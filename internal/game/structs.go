package game

import "github.com/rocketscienceinc/tictactoe-rooms/internal/entity"

// Outcome describes an accepted move.
type Outcome struct {
	Role   entity.Role
	Placed entity.Cell
	// Evicted is the piece the move pushed off the board, if any.
	Evicted *entity.Cell
	// Winner is set when the move completed a line.
	Winner entity.Role
}

func (that Outcome) IsWin() bool {
	return that.Winner != entity.NoRole
}
