package presence

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	counts []int
}

func (that *recordingBroadcaster) ToAll(event string, payload any) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if event == entity.EventOnlinePlayers {
		that.counts = append(that.counts, payload.(entity.OnlinePlayersPayload).Count)
	}
}

func newCounter() (*Counter, *recordingBroadcaster) {
	b := &recordingBroadcaster{}
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), b), b
}

func TestCounter(t *testing.T) {
	t.Run("Every change is announced", func(t *testing.T) {
		// Given: an empty counter
		counter, b := newCounter()

		// When: two sessions connect and one leaves
		counter.Connect()
		counter.Connect()
		left := counter.Disconnect()

		// Then: each total was broadcast in order
		assert.Equal(t, 1, left)
		assert.Equal(t, 1, counter.Count())
		assert.Equal(t, []int{1, 2, 1}, b.counts)
	})

	t.Run("Never goes below zero", func(t *testing.T) {
		// Given: an empty counter
		counter, _ := newCounter()

		// When: a stray disconnect arrives
		count := counter.Disconnect()

		// Then: the total stays at zero
		assert.Equal(t, 0, count)
	})

	t.Run("Concurrent sessions are all counted", func(t *testing.T) {
		// Given: an empty counter
		counter, b := newCounter()

		// When: many sessions connect at once
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				counter.Connect()
			}()
		}
		wg.Wait()

		// Then: the final total is exact and announcements are monotonic
		assert.Equal(t, 50, counter.Count())
		assert.Len(t, b.counts, 50)
		assert.IsIncreasing(t, b.counts)
	})
}
