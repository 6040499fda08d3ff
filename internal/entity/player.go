package entity

// Profile - identity supplied by the caller. Fields are opaque and never validated.
type Profile struct {
	DisplayName string `json:"displayName"`
	AvatarRef   string `json:"avatarRef"`
	UserID      string `json:"userId"`
}

// RoleSlot - the session seated in a role together with its running score.
type RoleSlot struct {
	SessionID string `json:"sessionId"`
	Profile
	Score int `json:"score"`
}

type Roles struct {
	X *RoleSlot `json:"X"`
	O *RoleSlot `json:"O"`
}

func (that *Roles) Get(role Role) *RoleSlot {
	switch role {
	case PlayerX:
		return that.X
	case PlayerO:
		return that.O
	default:
		return nil
	}
}

func (that *Roles) set(role Role, slot *RoleSlot) {
	switch role {
	case PlayerX:
		that.X = slot
	case PlayerO:
		that.O = slot
	}
}

// RoleOf - returns the role held by sessionID or NoRole.
func (that *Roles) RoleOf(sessionID string) Role {
	switch {
	case that.X != nil && that.X.SessionID == sessionID:
		return PlayerX
	case that.O != nil && that.O.SessionID == sessionID:
		return PlayerO
	default:
		return NoRole
	}
}

func (that *Roles) clone() Roles {
	var out Roles
	if that.X != nil {
		x := *that.X
		out.X = &x
	}
	if that.O != nil {
		o := *that.O
		out.O = &o
	}

	return out
}

// MatchResult - what the statistics store learns about a finished match.
type MatchResult struct {
	RoomID       string
	Winner       Role
	WinnerUserID string
	LoserUserID  string
	Forfeit      bool
}
