package entity

// Server to client events.
const (
	EventPlayerJoined  = "playerJoined"
	EventPlayerLeft    = "playerLeft"
	EventGameStarted   = "gameStarted"
	EventGameUpdate    = "gameUpdate"
	EventGameOver      = "gameOver"
	EventGameReset     = "gameReset"
	EventRoomCreated   = "roomCreated"
	EventOnlinePlayers = "updateOnlinePlayers"
	EventRoomInfo      = "roomInfo"
	EventInvalidMove   = "invalidMove"
	EventAck           = "ack"
	EventSession       = "session"
)

type PlayerJoinedPayload struct {
	SessionID string  `json:"sessionId"`
	Role      Role    `json:"role"`
	Profile   Profile `json:"profile"`
}

type PlayerLeftPayload struct {
	SessionID string `json:"sessionId"`
}

type GameUpdatePayload struct {
	Board           Board      `json:"board"`
	Turn            Role       `json:"turn"`
	PendingEviction []Eviction `json:"pendingEviction"`
}

type GameOverPayload struct {
	Winner  Role  `json:"winner"`
	Roles   Roles `json:"roles"`
	Forfeit bool  `json:"forfeit,omitempty"`
}

type GameResetPayload struct {
	Board Board `json:"board"`
	Turn  Role  `json:"turn"`
}

type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
}

type OnlinePlayersPayload struct {
	Count int `json:"count"`
}

// SessionPayload - first frame on every connection, tells the client its session id.
type SessionPayload struct {
	SessionID string `json:"sessionId"`
}
