package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Session - one live connection. roomID is only touched by the session's read loop.
type Session struct {
	ID     string
	roomID string

	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger
}

func newSession(id string, conn *websocket.Conn, queue int, logger *slog.Logger) *Session {
	return &Session{
		ID:     id,
		conn:   conn,
		send:   make(chan []byte, queue),
		logger: logger.With("sessionID", id),
	}
}

func (that *Session) RoomID() string {
	return that.roomID
}

// enqueue - never blocks. A session that can't keep up is disconnected.
func (that *Session) enqueue(data []byte) {
	select {
	case that.send <- data:
	default:
		that.logger.Warn("send queue is full, dropping session")
		_ = that.conn.Close()
	}
}

func (that *Session) reply(event, id string, payload any) {
	data, err := encode(event, id, payload)
	if err != nil {
		that.logger.Error("failed to encode reply", "event", event, "error", err)
		return
	}

	that.enqueue(data)
}

// writeLoop - pumps queued frames to the socket and keeps it alive with pings.
func (that *Session) writeLoop(pingPeriod, writeWait time.Duration) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				that.logger.Debug("failed to write frame", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
