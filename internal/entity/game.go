package entity

import (
	"encoding/json"
	"fmt"
)

type Role string

const (
	PlayerX Role = "X"
	PlayerO Role = "O"
	NoRole  Role = ""
)

const (
	BoardSize = 3

	// MaxPieces - how many pieces of one role may be on the board at once.
	MaxPieces = 3
)

// WinLines - rows, columns and both diagonals.
var WinLines = [8][3]Cell{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Opponent - returns the other side of the match.
func (that Role) Opponent() Role {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoRole
	}
}

func (that Role) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// MarshalJSON - an empty role is written as null, so empty cells and a missing winner read naturally on the client.
func (that Role) MarshalJSON() ([]byte, error) {
	if that == NoRole {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Role) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = NoRole
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal role: %w", err)
	}

	*that = Role(raw)

	return nil
}

// Cell - a board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

type Board [BoardSize][BoardSize]Role

func (that *Board) At(cell Cell) Role {
	return that[cell.Row][cell.Col]
}

func (that *Board) Set(cell Cell, role Role) {
	that[cell.Row][cell.Col] = role
}

// Count - number of cells held by role.
func (that *Board) Count(role Role) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == role {
				count++
			}
		}
	}

	return count
}

// Eviction - a piece that leaves the board on its owner's next placement.
type Eviction struct {
	Role Role `json:"player"`
	Row  int  `json:"row"`
	Col  int  `json:"col"`
}
