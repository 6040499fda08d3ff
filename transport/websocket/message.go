package websocket

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// Client to server intents.
const (
	actionCreateRoom  = "createRoom"
	actionJoinRoom    = "joinRoom"
	actionLeaveRoom   = "leaveRoom"
	actionGetRoomInfo = "getRoomInfo"
	actionStartGame   = "startGame"
	actionMakeMove    = "makeMove"
	actionResetGame   = "resetGame"
)

// Message - one frame in either direction. ID is chosen by the client and echoed in the ack.
type Message struct {
	Event   string          `json:"event"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outMessage struct {
	Event   string `json:"event"`
	ID      string `json:"id,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// AckPayload - answer to a single intent, sent only to its author.
type AckPayload struct {
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

type JoinPayload struct {
	RoomID  string         `json:"roomId"`
	Profile entity.Profile `json:"profile"`
}

type MovePayload struct {
	RoomID string `json:"roomId"`
	Row    *int   `json:"row"`
	Col    *int   `json:"col"`
}

// RoomIDPayload - accepts either a bare string or {"roomId": "..."}.
type RoomIDPayload struct {
	RoomID string `json:"roomId"`
}

func (that *RoomIDPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &that.RoomID)
	}

	var obj struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	that.RoomID = obj.RoomID

	return nil
}

func encode(event, id string, payload any) ([]byte, error) {
	data, err := json.Marshal(outMessage{Event: event, ID: id, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", event, err)
	}

	return data, nil
}

func decodeJoin(msg *Message) (JoinPayload, error) {
	var payload JoinPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	if payload.RoomID == "" {
		return payload, fmt.Errorf("%w: roomId is required", apperror.ErrInvalidPayload)
	}

	return payload, nil
}

func decodeRoomID(msg *Message) (string, error) {
	var payload RoomIDPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	if payload.RoomID == "" {
		return "", fmt.Errorf("%w: roomId is required", apperror.ErrInvalidPayload)
	}

	return payload.RoomID, nil
}

func decodeMove(msg *Message) (string, int, int, error) {
	var payload MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return "", 0, 0, fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	if payload.RoomID == "" || payload.Row == nil || payload.Col == nil {
		return "", 0, 0, fmt.Errorf("%w: roomId, row and col are required", apperror.ErrInvalidPayload)
	}

	return payload.RoomID, *payload.Row, *payload.Col, nil
}
