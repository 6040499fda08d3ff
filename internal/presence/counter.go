// Package presence counts connected sessions and tells everyone when the number moves.
package presence

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type broadcaster interface {
	ToAll(event string, payload any)
}

type Counter struct {
	logger      *slog.Logger
	broadcaster broadcaster

	mu    sync.Mutex
	count int
}

func New(logger *slog.Logger, broadcaster broadcaster) *Counter {
	return &Counter{
		logger:      logger.With("component", "presence"),
		broadcaster: broadcaster,
	}
}

// Connect - counts a new session and announces the total.
func (that *Counter) Connect() int {
	return that.change(1)
}

// Disconnect - forgets a session and announces the total.
func (that *Counter) Disconnect() int {
	return that.change(-1)
}

func (that *Counter) Count() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.count
}

// change - the broadcast happens under the lock so totals reach clients in order.
func (that *Counter) change(delta int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.count += delta
	if that.count < 0 {
		that.logger.Warn("online counter went negative, clamping", "count", that.count)
		that.count = 0
	}

	that.broadcaster.ToAll(entity.EventOnlinePlayers, entity.OnlinePlayersPayload{Count: that.count})

	return that.count
}
