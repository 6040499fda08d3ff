package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

var (
	alice = Profile{DisplayName: "Alice", AvatarRef: "a.png", UserID: "user-a"}
	bob   = Profile{DisplayName: "Bob", AvatarRef: "b.png", UserID: "user-b"}
	carol = Profile{DisplayName: "Carol", AvatarRef: "c.png", UserID: "user-c"}
)

func fullRoom(t *testing.T) *Room {
	t.Helper()

	room := NewRoom("ABC123")
	_, err := room.Join("s1", alice)
	require.NoError(t, err)
	_, err = room.Join("s2", bob)
	require.NoError(t, err)

	return room
}

func TestNewRoom(t *testing.T) {
	// When: creating a room
	room := NewRoom("ABC123")

	// Then: it is empty, X moves first and nothing is running
	assert.Equal(t, "ABC123", room.ID)
	assert.Empty(t, room.Players)
	assert.Equal(t, PlayerX, room.Turn)
	assert.Equal(t, Board{}, room.Board)
	assert.False(t, room.Started)
	assert.Equal(t, NoRole, room.Winner)
}

func TestRoom_Join(t *testing.T) {
	t.Run("First player is X, second is O", func(t *testing.T) {
		// Given: a fresh room
		room := NewRoom("ABC123")

		// When: two sessions join
		first, err := room.Join("s1", alice)
		require.NoError(t, err)
		second, err := room.Join("s2", bob)
		require.NoError(t, err)

		// Then: the creator holds X and the guest holds O
		assert.Equal(t, PlayerX, first)
		assert.Equal(t, PlayerO, second)
		assert.Equal(t, []string{"s1", "s2"}, room.Players)
		assert.Equal(t, &RoleSlot{SessionID: "s1", Profile: alice}, room.Roles.X)
		assert.Equal(t, &RoleSlot{SessionID: "s2", Profile: bob}, room.Roles.O)
	})

	t.Run("Third player is rejected without state change", func(t *testing.T) {
		// Given: a room with two players
		room := fullRoom(t)
		before := room.Info()

		// When: a third session joins
		role, err := room.Join("s3", carol)

		// Then: the room is full and nothing changed
		require.ErrorIs(t, err, apperror.ErrRoomFull)
		assert.Equal(t, NoRole, role)
		assert.Equal(t, before, room.Info())
	})

	t.Run("Vacated X seat is refilled first", func(t *testing.T) {
		// Given: a room where X left
		room := fullRoom(t)
		room.Leave("s1")

		// When: a new session joins
		role, err := room.Join("s3", carol)

		// Then: it takes the free X seat
		require.NoError(t, err)
		assert.Equal(t, PlayerX, role)
		assert.Equal(t, "s3", room.Roles.X.SessionID)
	})

	t.Run("Joining twice keeps the seat", func(t *testing.T) {
		// Given: a room with one player
		room := NewRoom("ABC123")
		_, err := room.Join("s1", alice)
		require.NoError(t, err)

		// When: the same session joins again
		role, err := room.Join("s1", alice)

		// Then: nothing is duplicated
		require.NoError(t, err)
		assert.Equal(t, PlayerX, role)
		assert.Equal(t, []string{"s1"}, room.Players)
	})

	t.Run("Closed room cannot be joined", func(t *testing.T) {
		// Given: a room dropped from the registry
		room := NewRoom("ABC123")
		room.Close()

		// When: someone joins
		_, err := room.Join("s1", alice)

		// Then: it behaves like a missing room
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRoom_Leave(t *testing.T) {
	t.Run("Leaving a started match forfeits it", func(t *testing.T) {
		// Given: a running match
		room := fullRoom(t)
		require.NoError(t, room.Start())

		// When: X leaves
		result := room.Leave("s1")

		// Then: O wins, its score grows and the match is over
		assert.True(t, result.Left)
		assert.Equal(t, PlayerX, result.Role)
		assert.Equal(t, PlayerO, result.Winner)
		assert.Equal(t, alice, result.Loser)
		assert.Equal(t, PlayerO, room.Winner)
		assert.False(t, room.Started)
		assert.Equal(t, 1, room.Roles.O.Score)

		// And: the leaver is unseated, but the result keeps the final roles
		assert.Nil(t, room.Roles.X)
		require.NotNil(t, result.Roles.X)
		assert.Equal(t, "s1", result.Roles.X.SessionID)
		assert.Equal(t, []string{"s2"}, result.Remained)
		assert.False(t, result.Empty)
	})

	t.Run("Leaving before start is plain removal", func(t *testing.T) {
		// Given: two players that have not started
		room := fullRoom(t)

		// When: O leaves
		result := room.Leave("s2")

		// Then: no winner is declared
		assert.True(t, result.Left)
		assert.Equal(t, NoRole, result.Winner)
		assert.Equal(t, NoRole, room.Winner)
		assert.Nil(t, room.Roles.O)
		assert.Equal(t, 0, room.Roles.X.Score)
	})

	t.Run("Last player leaving empties the room", func(t *testing.T) {
		// Given: a room with a single player
		room := NewRoom("ABC123")
		_, err := room.Join("s1", alice)
		require.NoError(t, err)

		// When: that player leaves
		result := room.Leave("s1")

		// Then: the room reports it is empty
		assert.True(t, result.Empty)
		assert.Empty(t, room.Players)
		assert.Nil(t, room.Roles.X)
	})

	t.Run("Unknown session is ignored", func(t *testing.T) {
		// Given: a full room
		room := fullRoom(t)

		// When: an outsider leaves
		result := room.Leave("nobody")

		// Then: nothing happens
		assert.False(t, result.Left)
		assert.Len(t, room.Players, 2)
	})
}

func TestRoom_Start(t *testing.T) {
	t.Run("Needs two players", func(t *testing.T) {
		// Given: a room with one player
		room := NewRoom("ABC123")
		_, err := room.Join("s1", alice)
		require.NoError(t, err)

		// When: starting the match
		err = room.Start()

		// Then: it is refused
		require.ErrorIs(t, err, apperror.ErrNotEnoughPlayers)
		assert.False(t, room.Started)
	})

	t.Run("Starts with two players and tolerates a repeat", func(t *testing.T) {
		// Given: a full room
		room := fullRoom(t)

		// When: starting twice
		require.NoError(t, room.Start())
		require.NoError(t, room.Start())

		// Then: the match is running
		assert.True(t, room.Started)
	})
}

func TestRoom_Reset(t *testing.T) {
	// Given: a finished match with pieces on the board
	room := fullRoom(t)
	room.Board.Set(Cell{Row: 0, Col: 0}, PlayerX)
	room.Moves[PlayerX] = []Cell{{Row: 0, Col: 0}}
	room.PendingEviction = []Eviction{{Role: PlayerX}}
	room.Turn = PlayerO
	room.Conclude(PlayerX)

	// When: resetting
	room.Reset()

	// Then: the board is clean, X moves, the match runs and scores survive
	assert.Equal(t, Board{}, room.Board)
	assert.Empty(t, room.Moves[PlayerX])
	assert.Empty(t, room.Moves[PlayerO])
	assert.Empty(t, room.PendingEviction)
	assert.Equal(t, NoRole, room.Winner)
	assert.Equal(t, PlayerX, room.Turn)
	assert.True(t, room.Started)
	assert.Equal(t, 1, room.Roles.X.Score)
	assert.Equal(t, []string{"s1", "s2"}, room.Players)
}

func TestRoom_Info(t *testing.T) {
	// Given: a full room
	room := fullRoom(t)

	// When: taking a snapshot and mutating the room afterwards
	info := room.Info()
	room.Roles.X.Score = 7
	room.Players[0] = "changed"

	// Then: the snapshot is unaffected
	assert.Equal(t, 0, info.Roles.X.Score)
	assert.Equal(t, []string{"s1", "s2"}, info.Players)
}

func TestRoom_MatchResult(t *testing.T) {
	// Given: a match X has won
	room := fullRoom(t)
	room.Conclude(PlayerX)

	// When: building the statistics summary
	result := room.MatchResult(bob, false)

	// Then: both users are named
	assert.Equal(t, MatchResult{
		RoomID:       "ABC123",
		Winner:       PlayerX,
		WinnerUserID: "user-a",
		LoserUserID:  "user-b",
	}, result)
}
