package apperror

import "errors"

// Texts are sent to clients as-is.
//
//nolint:stylecheck // capitalised on purpose
var (
	ErrRoomAlreadyExists = errors.New("Room already exists")
	ErrRoomFull          = errors.New("Room is full")
	ErrRoomNotFound      = errors.New("Room does not exist")
	ErrNotEnoughPlayers  = errors.New("Not enough players")
	ErrNotInRoom         = errors.New("You are not in this room")

	ErrCellOccupied     = errors.New("Cell is already occupied")
	ErrNotYourTurn      = errors.New("It's not your turn")
	ErrGameOver         = errors.New("Game is already over")
	ErrGameIsNotStarted = errors.New("Game is not started")
	ErrInvalidCell      = errors.New("Invalid cell")

	ErrInvalidPayload = errors.New("Invalid payload")
	ErrUnknownEvent   = errors.New("Unknown event")
)

const internalErrorText = "Internal error"

var known = []error{
	ErrRoomAlreadyExists,
	ErrRoomFull,
	ErrRoomNotFound,
	ErrNotEnoughPlayers,
	ErrNotInRoom,
	ErrCellOccupied,
	ErrNotYourTurn,
	ErrGameOver,
	ErrGameIsNotStarted,
	ErrInvalidCell,
	ErrInvalidPayload,
	ErrUnknownEvent,
}

// IsKnown - reports whether err wraps one of the client facing errors.
func IsKnown(err error) bool {
	return Message(err) != internalErrorText
}

// Message - returns the client facing text for err. Wrapped sentinels keep their own text,
// everything else is hidden behind a generic message.
func Message(err error) string {
	for _, target := range known {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return internalErrorText
}
