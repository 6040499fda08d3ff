package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/game"
)

const defaultStatsTimeout = 5 * time.Second

type roomRepo interface {
	Create(roomID, sessionID string, profile entity.Profile) (*entity.Room, error)
	GetByID(roomID string) (*entity.Room, error)
	DeleteByID(roomID string)
	Count() int
}

type statsRepo interface {
	RecordMatch(ctx context.Context, result entity.MatchResult) error
}

type broadcaster interface {
	ToSessions(sessionIDs []string, event string, payload any)
	ToAll(event string, payload any)
}

// RoomManager - applies intents to rooms. Every room is mutated under its own lock and its events are
// handed to the broadcaster before the lock is released, so members see them in order.
type RoomManager struct {
	logger      *slog.Logger
	roomRepo    roomRepo
	statsRepo   statsRepo
	broadcaster broadcaster

	statsTimeout time.Duration
	statsWG      sync.WaitGroup
}

func NewRoomManager(logger *slog.Logger, roomRepo roomRepo, statsRepo statsRepo, broadcaster broadcaster, statsTimeout time.Duration) *RoomManager {
	if statsTimeout <= 0 {
		statsTimeout = defaultStatsTimeout
	}

	return &RoomManager{
		logger:      logger.With("component", "room_manager"),
		roomRepo:    roomRepo,
		statsRepo:   statsRepo,
		broadcaster: broadcaster,

		statsTimeout: statsTimeout,
	}
}

// CreateRoom - registers roomID with the caller seated as X and announces it to everyone.
func (that *RoomManager) CreateRoom(_ context.Context, sessionID, roomID string, profile entity.Profile) (*entity.RoomInfo, error) {
	log := that.logger.With("method", "CreateRoom", "roomID", roomID, "sessionID", sessionID)

	room, err := that.roomRepo.Create(roomID, sessionID, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create room %s: %w", roomID, err)
	}

	room.Lock()
	info := room.Info()
	room.Unlock()

	that.broadcaster.ToAll(entity.EventRoomCreated, entity.RoomCreatedPayload{RoomID: roomID})

	log.Info("room created", "rooms", that.roomRepo.Count())

	return info, nil
}

func (that *RoomManager) JoinRoom(_ context.Context, sessionID, roomID string, profile entity.Profile) (*entity.RoomInfo, error) {
	log := that.logger.With("method", "JoinRoom", "roomID", roomID, "sessionID", sessionID)

	room, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", roomID, err)
	}

	room.Lock()
	defer room.Unlock()

	if room.IsMember(sessionID) {
		return room.Info(), nil
	}

	role, err := room.Join(sessionID, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", roomID, err)
	}

	that.broadcaster.ToSessions(room.Players, entity.EventPlayerJoined, entity.PlayerJoinedPayload{
		SessionID: sessionID,
		Role:      role,
		Profile:   profile,
	})

	log.Info("player joined", "role", role)

	return room.Info(), nil
}

// LeaveRoom - unseats the caller. A running match is forfeited to the opponent and an empty room is dropped.
func (that *RoomManager) LeaveRoom(_ context.Context, sessionID, roomID string) error {
	log := that.logger.With("method", "LeaveRoom", "roomID", roomID, "sessionID", sessionID)

	room, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return fmt.Errorf("failed to get room %s: %w", roomID, err)
	}

	room.Lock()
	defer room.Unlock()

	result := room.Leave(sessionID)
	if !result.Left {
		return apperror.ErrNotInRoom
	}

	audience := append(result.Remained, sessionID)

	that.broadcaster.ToSessions(audience, entity.EventPlayerLeft, entity.PlayerLeftPayload{SessionID: sessionID})

	if result.Winner != entity.NoRole {
		that.broadcaster.ToSessions(audience, entity.EventGameOver, entity.GameOverPayload{
			Winner:  result.Winner,
			Roles:   result.Roles,
			Forfeit: true,
		})

		that.recordMatch(room.MatchResult(result.Loser, true))

		log.Info("match forfeited", "winner", result.Winner)
	}

	if result.Empty {
		room.Close()
		that.roomRepo.DeleteByID(roomID)

		log.Info("room deleted, no players left", "rooms", that.roomRepo.Count())
	}

	log.Info("player left", "role", result.Role)

	return nil
}

func (that *RoomManager) GetRoomInfo(_ context.Context, roomID string) (*entity.RoomInfo, error) {
	room, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", roomID, err)
	}

	room.Lock()
	defer room.Unlock()

	if room.IsClosed() {
		return nil, apperror.ErrRoomNotFound
	}

	return room.Info(), nil
}

func (that *RoomManager) StartGame(_ context.Context, sessionID, roomID string) error {
	log := that.logger.With("method", "StartGame", "roomID", roomID, "sessionID", sessionID)

	room, err := that.lockMember(sessionID, roomID)
	if err != nil {
		return err
	}
	defer room.Unlock()

	if err = room.Start(); err != nil {
		return fmt.Errorf("failed to start game in room %s: %w", roomID, err)
	}

	that.broadcaster.ToSessions(room.Players, entity.EventGameStarted, nil)

	log.Info("game started")

	return nil
}

// MakeMove - plays for whichever role the caller holds.
func (that *RoomManager) MakeMove(_ context.Context, sessionID, roomID string, row, col int) error {
	log := that.logger.With("method", "MakeMove", "roomID", roomID, "sessionID", sessionID)

	room, err := that.lockMember(sessionID, roomID)
	if err != nil {
		return err
	}
	defer room.Unlock()

	if !room.Started && !room.IsFinished() {
		return apperror.ErrGameIsNotStarted
	}

	role := room.Roles.RoleOf(sessionID)

	outcome, err := game.ApplyMove(room, role, row, col)
	if err != nil {
		return fmt.Errorf("failed to make move in room %s: %w", roomID, err)
	}

	info := room.Info()

	that.broadcaster.ToSessions(info.Players, entity.EventGameUpdate, entity.GameUpdatePayload{
		Board:           info.Board,
		Turn:            info.Turn,
		PendingEviction: info.PendingEviction,
	})

	if outcome.Evicted != nil {
		log.Debug("piece evicted", "role", role, "row", outcome.Evicted.Row, "col", outcome.Evicted.Col)
	}

	if outcome.IsWin() {
		that.broadcaster.ToSessions(info.Players, entity.EventGameOver, entity.GameOverPayload{
			Winner: outcome.Winner,
			Roles:  info.Roles,
		})

		var loser entity.Profile
		if slot := room.Roles.Get(outcome.Winner.Opponent()); slot != nil {
			loser = slot.Profile
		}

		that.recordMatch(room.MatchResult(loser, false))

		log.Info("game over", "winner", outcome.Winner)
	}

	return nil
}

// ResetGame - clears the board for a rematch, keeping seats and scores.
func (that *RoomManager) ResetGame(_ context.Context, sessionID, roomID string) error {
	log := that.logger.With("method", "ResetGame", "roomID", roomID, "sessionID", sessionID)

	room, err := that.lockMember(sessionID, roomID)
	if err != nil {
		return err
	}
	defer room.Unlock()

	room.Reset()

	that.broadcaster.ToSessions(room.Players, entity.EventGameReset, entity.GameResetPayload{
		Board: room.Board,
		Turn:  room.Turn,
	})

	log.Info("game reset")

	return nil
}

// Wait - blocks until pending statistics notifications are done.
func (that *RoomManager) Wait() {
	that.statsWG.Wait()
}

// lockMember - returns the room locked when sessionID is seated in it.
func (that *RoomManager) lockMember(sessionID, roomID string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", roomID, err)
	}

	room.Lock()

	if room.IsClosed() {
		room.Unlock()
		return nil, apperror.ErrRoomNotFound
	}

	if !room.IsMember(sessionID) {
		room.Unlock()
		return nil, apperror.ErrNotInRoom
	}

	return room, nil
}

// recordMatch - fire and forget, players never wait on the statistics store.
func (that *RoomManager) recordMatch(result entity.MatchResult) {
	log := that.logger.With("method", "recordMatch", "roomID", result.RoomID)

	that.statsWG.Add(1)
	go func() {
		defer that.statsWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), that.statsTimeout)
		defer cancel()

		if err := that.statsRepo.RecordMatch(ctx, result); err != nil {
			log.Error("failed to record match", "error", err)
		}
	}()
}
