package entity

import (
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

const maxPlayers = 2

// Room - state of one match. Callers serialise access with Lock/Unlock.
type Room struct {
	mu     sync.Mutex
	closed bool

	ID              string
	Players         []string
	Roles           Roles
	Board           Board
	Turn            Role
	Moves           map[Role][]Cell
	PendingEviction []Eviction
	Winner          Role
	Started         bool
}

// RoomInfo - detached copy of a room, safe to marshal after the lock is released.
type RoomInfo struct {
	RoomID          string     `json:"roomId"`
	Players         []string   `json:"players"`
	Roles           Roles      `json:"roles"`
	Board           Board      `json:"board"`
	Turn            Role       `json:"turn"`
	PendingEviction []Eviction `json:"pendingEviction"`
	Winner          Role       `json:"winner"`
	Started         bool       `json:"started"`
}

// LeaveResult - what happened when a session left.
type LeaveResult struct {
	Left bool
	Role Role
	// Winner is set when the departure forfeited a running match.
	Winner Role
	// Roles as they stood when the match concluded, before the leaver was unseated.
	Roles    Roles
	Loser    Profile
	Empty    bool
	Remained []string
}

func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		Players: make([]string, 0, maxPlayers),
		Turn:    PlayerX,
		Moves:   map[Role][]Cell{PlayerX: {}, PlayerO: {}},
	}
}

func (that *Room) Lock() {
	that.mu.Lock()
}

func (that *Room) Unlock() {
	that.mu.Unlock()
}

// Close - marks a room that was dropped from the registry.
func (that *Room) Close() {
	that.closed = true
}

func (that *Room) IsClosed() bool {
	return that.closed
}

func (that *Room) IsMember(sessionID string) bool {
	return slices.Contains(that.Players, sessionID)
}

func (that *Room) IsFinished() bool {
	return that.Winner != NoRole
}

// Join - seats sessionID in the free role, X first. Joining twice is a no-op.
func (that *Room) Join(sessionID string, profile Profile) (Role, error) {
	if that.closed {
		return NoRole, apperror.ErrRoomNotFound
	}

	if that.IsMember(sessionID) {
		return that.Roles.RoleOf(sessionID), nil
	}

	if len(that.Players) >= maxPlayers {
		return NoRole, apperror.ErrRoomFull
	}

	role := PlayerX
	if that.Roles.X != nil {
		role = PlayerO
	}

	that.Roles.set(role, &RoleSlot{SessionID: sessionID, Profile: profile})
	that.Players = append(that.Players, sessionID)

	return role, nil
}

// Leave - removes sessionID. Leaving a started match with one opponent left hands the opponent the win.
func (that *Room) Leave(sessionID string) LeaveResult {
	idx := slices.Index(that.Players, sessionID)
	if idx == -1 {
		return LeaveResult{Empty: len(that.Players) == 0}
	}

	that.Players = slices.Delete(that.Players, idx, idx+1)

	result := LeaveResult{
		Left:     true,
		Role:     that.Roles.RoleOf(sessionID),
		Remained: slices.Clone(that.Players),
	}

	if slot := that.Roles.Get(result.Role); slot != nil {
		result.Loser = slot.Profile
	}

	if that.Started && len(that.Players) == 1 && result.Role.IsValid() {
		result.Winner = result.Role.Opponent()
		that.Conclude(result.Winner)
		result.Roles = that.Roles.clone()
	}

	that.Roles.set(result.Role, nil)
	result.Empty = len(that.Players) == 0

	return result
}

// Start - requires both seats to be taken.
func (that *Room) Start() error {
	if len(that.Players) != maxPlayers {
		return apperror.ErrNotEnoughPlayers
	}

	that.Started = true

	return nil
}

// Reset - clears the board for a rematch. Seats and scores survive.
func (that *Room) Reset() {
	that.Board = Board{}
	that.Moves = map[Role][]Cell{PlayerX: {}, PlayerO: {}}
	that.PendingEviction = nil
	that.Winner = NoRole
	that.Turn = PlayerX
	that.Started = true
}

// Conclude - records winner and ends the match.
func (that *Room) Conclude(winner Role) {
	that.Winner = winner
	if slot := that.Roles.Get(winner); slot != nil {
		slot.Score++
	}
	that.Started = false
}

// MatchResult - summary of a concluded match for the statistics store.
func (that *Room) MatchResult(loser Profile, forfeit bool) MatchResult {
	result := MatchResult{
		RoomID:      that.ID,
		Winner:      that.Winner,
		LoserUserID: loser.UserID,
		Forfeit:     forfeit,
	}

	if slot := that.Roles.Get(that.Winner); slot != nil {
		result.WinnerUserID = slot.UserID
	}

	return result
}

func (that *Room) Info() *RoomInfo {
	pending := make([]Eviction, len(that.PendingEviction))
	copy(pending, that.PendingEviction)

	return &RoomInfo{
		RoomID:          that.ID,
		Players:         slices.Clone(that.Players),
		Roles:           that.Roles.clone(),
		Board:           that.Board,
		Turn:            that.Turn,
		PendingEviction: pending,
		Winner:          that.Winner,
		Started:         that.Started,
	}
}
