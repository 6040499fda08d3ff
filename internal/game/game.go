// Package game holds the rules of three-piece tic-tac-toe. Functions here only touch the room they are given.
package game

import (
	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// ApplyMove - places a piece for role at (row, col). A role that already has MaxPieces on the board
// loses its oldest one first. On error the room is left untouched.
func ApplyMove(room *entity.Room, role entity.Role, row, col int) (Outcome, error) {
	cell := entity.Cell{Row: row, Col: col}

	if err := validateMove(room, role, cell); err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Role: role, Placed: cell}

	history := room.Moves[role]
	if len(history) == entity.MaxPieces {
		oldest := history[0]
		room.Board.Set(oldest, entity.NoRole)
		history = history[1:]
		outcome.Evicted = &oldest
	}

	room.Moves[role] = append(history, cell)
	room.Board.Set(cell, role)

	room.PendingEviction = pendingEvictions(room.Moves)
	room.Turn = role.Opponent()

	if isWinner(&room.Board, role) {
		room.Conclude(role)
		outcome.Winner = role
	}

	return outcome, nil
}

// validateMove - checks if the move is valid.
func validateMove(room *entity.Room, role entity.Role, cell entity.Cell) error {
	if room.IsFinished() {
		return apperror.ErrGameOver
	}

	if !cell.InBounds() {
		return apperror.ErrInvalidCell
	}

	if room.Turn != role {
		return apperror.ErrNotYourTurn
	}

	if room.Board.At(cell) != entity.NoRole {
		return apperror.ErrCellOccupied
	}

	return nil
}

// pendingEvictions - marks the oldest piece of every role that is at the cap.
func pendingEvictions(moves map[entity.Role][]entity.Cell) []entity.Eviction {
	marks := make([]entity.Eviction, 0, 2)

	for _, role := range []entity.Role{entity.PlayerX, entity.PlayerO} {
		history := moves[role]
		if len(history) == entity.MaxPieces {
			marks = append(marks, entity.Eviction{Role: role, Row: history[0].Row, Col: history[0].Col})
		}
	}

	return marks
}

// isWinner - only the mover's lines are checked, a move can't complete a line for the other side.
func isWinner(board *entity.Board, role entity.Role) bool {
	for _, line := range entity.WinLines {
		if board.At(line[0]) == role && board.At(line[1]) == role && board.At(line[2]) == role {
			return true
		}
	}

	return false
}
