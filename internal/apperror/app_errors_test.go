package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	t.Run("Returns sentinel text for wrapped errors", func(t *testing.T) {
		// Given: a room error wrapped by a caller
		err := fmt.Errorf("join room ABC: %w", ErrRoomFull)

		// When: converting it for the client
		text := Message(err)

		// Then: only the sentinel text is exposed
		assert.Equal(t, "Room is full", text)
	})

	t.Run("Hides unknown errors", func(t *testing.T) {
		// Given: an error the protocol does not know about
		err := errors.New("redis: connection refused")

		// When: converting it for the client
		text := Message(err)

		// Then: a generic message is returned
		assert.Equal(t, internalErrorText, text)
	})
}

func TestIsKnown(t *testing.T) {
	// Given: a wrapped protocol error and a foreign one
	wrapped := fmt.Errorf("move: %w", ErrNotYourTurn)
	foreign := errors.New("boom")

	// Then: only the protocol error is known
	assert.True(t, IsKnown(wrapped))
	assert.False(t, IsKnown(foreign))
	assert.False(t, IsKnown(nil))
}
