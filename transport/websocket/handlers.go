package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

func (that *Server) handleCreateRoom(ctx context.Context, session *Session, msg *Message) (any, error) {
	payload, err := decodeJoin(msg)
	if err != nil {
		return nil, err
	}

	info, err := that.rooms.CreateRoom(ctx, session.ID, payload.RoomID, payload.Profile)
	if err != nil {
		return nil, err
	}

	that.leavePreviousRoom(ctx, session, payload.RoomID)

	return info, nil
}

func (that *Server) handleJoinRoom(ctx context.Context, session *Session, msg *Message) (any, error) {
	payload, err := decodeJoin(msg)
	if err != nil {
		return nil, err
	}

	info, err := that.rooms.JoinRoom(ctx, session.ID, payload.RoomID, payload.Profile)
	if err != nil {
		return nil, err
	}

	that.leavePreviousRoom(ctx, session, payload.RoomID)

	return info, nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, session *Session, msg *Message) (any, error) {
	roomID, err := decodeRoomID(msg)
	if err != nil {
		return nil, err
	}

	if err = that.rooms.LeaveRoom(ctx, session.ID, roomID); err != nil {
		return nil, err
	}

	if session.roomID == roomID {
		session.roomID = ""
	}

	return nil, nil
}

// handleGetRoomInfo - a missing room is not an error, the client just gets null.
func (that *Server) handleGetRoomInfo(ctx context.Context, session *Session, msg *Message) (any, error) {
	roomID, err := decodeRoomID(msg)
	if err != nil {
		return nil, err
	}

	info, err := that.rooms.GetRoomInfo(ctx, roomID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		session.reply(entity.EventRoomInfo, "", nil)
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	session.reply(entity.EventRoomInfo, "", info)

	return info, nil
}

func (that *Server) handleStartGame(ctx context.Context, session *Session, msg *Message) (any, error) {
	roomID, err := decodeRoomID(msg)
	if err != nil {
		return nil, err
	}

	return nil, that.rooms.StartGame(ctx, session.ID, roomID)
}

// handleMakeMove - rejected moves are also pushed as invalidMove to the mover.
func (that *Server) handleMakeMove(ctx context.Context, session *Session, msg *Message) (any, error) {
	roomID, row, col, err := decodeMove(msg)
	if err == nil {
		err = that.rooms.MakeMove(ctx, session.ID, roomID, row, col)
	}

	if err != nil {
		session.reply(entity.EventInvalidMove, "", ErrorPayload{Error: apperror.Message(err)})
		return nil, err
	}

	return nil, nil
}

func (that *Server) handleResetGame(ctx context.Context, session *Session, msg *Message) (any, error) {
	roomID, err := decodeRoomID(msg)
	if err != nil {
		return nil, err
	}

	return nil, that.rooms.ResetGame(ctx, session.ID, roomID)
}

// leavePreviousRoom - a session sits in one room at a time. Called only once roomID is secured,
// so a refused create or join leaves the current room untouched.
func (that *Server) leavePreviousRoom(ctx context.Context, session *Session, roomID string) {
	previous := session.roomID
	session.roomID = roomID

	if previous == "" || previous == roomID {
		return
	}

	err := that.rooms.LeaveRoom(ctx, session.ID, previous)
	if err != nil && !errors.Is(err, apperror.ErrNotInRoom) && !errors.Is(err, apperror.ErrRoomNotFound) {
		session.logger.Error("failed to leave previous room", "roomID", previous, "error", err)
	}
}
