package repository

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// RoomRepository - process wide registry of live rooms.
type RoomRepository interface {
	Create(roomID, sessionID string, profile entity.Profile) (*entity.Room, error)
	GetByID(roomID string) (*entity.Room, error)
	DeleteByID(roomID string)
	Count() int
}

type memRoom struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func NewRoomRepository() RoomRepository {
	return &memRoom{
		rooms: make(map[string]*entity.Room),
	}
}

// Create - registers a new room with its creator already seated as X.
func (that *memRoom) Create(roomID, sessionID string, profile entity.Profile) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[roomID]; ok {
		return nil, apperror.ErrRoomAlreadyExists
	}

	room := entity.NewRoom(roomID)
	if _, err := room.Join(sessionID, profile); err != nil {
		return nil, err
	}

	that.rooms[roomID] = room

	return room, nil
}

func (that *memRoom) GetByID(roomID string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// DeleteByID - no-op when the room is already gone.
func (that *memRoom) DeleteByID(roomID string) {
	that.mu.Lock()
	delete(that.rooms, roomID)
	that.mu.Unlock()
}

func (that *memRoom) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}
