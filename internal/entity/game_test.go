package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, NoRole, NoRole.Opponent())
}

func TestRole_JSON(t *testing.T) {
	t.Run("Empty cells are written as null", func(t *testing.T) {
		// Given: a board with a single X piece
		var board Board
		board.Set(Cell{Row: 0, Col: 1}, PlayerX)

		// When: marshaling the board
		data, err := json.Marshal(board)
		require.NoError(t, err)

		// Then: empty cells are null and the piece keeps its mark
		assert.JSONEq(t, `[[null,"X",null],[null,null,null],[null,null,null]]`, string(data))
	})

	t.Run("Null is read back as an empty role", func(t *testing.T) {
		// Given: a payload with a null winner
		var payload struct {
			Winner Role `json:"winner"`
		}

		// When: unmarshaling it
		err := json.Unmarshal([]byte(`{"winner":null}`), &payload)

		// Then: the role is empty
		require.NoError(t, err)
		assert.Equal(t, NoRole, payload.Winner)
	})
}

func TestBoard_Count(t *testing.T) {
	// Given: a board with two X pieces and one O piece
	board := Board{
		{PlayerX, NoRole, PlayerO},
		{NoRole, PlayerX, NoRole},
		{NoRole, NoRole, NoRole},
	}

	// Then: each role is counted separately
	assert.Equal(t, 2, board.Count(PlayerX))
	assert.Equal(t, 1, board.Count(PlayerO))
	assert.Equal(t, 6, board.Count(NoRole))
}

func TestCell_InBounds(t *testing.T) {
	assert.True(t, Cell{Row: 0, Col: 0}.InBounds())
	assert.True(t, Cell{Row: 2, Col: 2}.InBounds())
	assert.False(t, Cell{Row: 3, Col: 0}.InBounds())
	assert.False(t, Cell{Row: 0, Col: -1}.InBounds())
}
