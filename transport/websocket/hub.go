package websocket

import (
	"log/slog"
	"sync"
)

// Hub - every connected session by id. It is the broadcaster behind rooms and presence.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	closed   bool
	sessions map[string]*Session
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		sessions: make(map[string]*Session),
	}
}

// register - false once the hub is shutting down.
func (that *Hub) register(session *Session) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	that.sessions[session.ID] = session

	return true
}

// unregister - closing send stops the session's write loop.
func (that *Hub) unregister(session *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[session.ID]; !ok {
		return
	}

	delete(that.sessions, session.ID)
	close(session.send)
}

// ToSessions - sends one event to the listed sessions. Unknown ids are skipped.
func (that *Hub) ToSessions(sessionIDs []string, event string, payload any) {
	data, err := encode(event, "", payload)
	if err != nil {
		that.logger.Error("failed to encode broadcast", "event", event, "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, id := range sessionIDs {
		if session, ok := that.sessions[id]; ok {
			session.enqueue(data)
		}
	}
}

func (that *Hub) ToAll(event string, payload any) {
	data, err := encode(event, "", payload)
	if err != nil {
		that.logger.Error("failed to encode broadcast", "event", event, "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, session := range that.sessions {
		session.enqueue(data)
	}
}

// closeAll - drops every connection and refuses new ones, used on shutdown.
func (that *Hub) closeAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true

	for _, session := range that.sessions {
		_ = session.conn.Close()
	}
}
