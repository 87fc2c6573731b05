package core

import "github.com/dkeye/Canvas/internal/domain"

// Outbound event names.
const (
	EventUserJoined      = "user_joined"
	EventUserLeft        = "user_left"
	EventVoiceUserJoined = "user-joined"
	EventVoiceUserLeft   = "user-left"
	EventWhoAmI          = "whoami"
	EventPong            = "pong"
)

// Outbound is one message and the sessions it must reach.
type Outbound struct {
	To      []SessionID
	Event   string
	Payload any
}

// MemberNotice announces a board room membership change.
type MemberNotice struct {
	Room   domain.RoomID `json:"room"`
	UserID SessionID     `json:"userId"`
}

// PeerNotice announces a voice room membership change.
type PeerNotice struct {
	UserID SessionID `json:"userId"`
}

type Identity struct {
	UserID     SessionID         `json:"userId"`
	Membership domain.Membership `json:"rooms"`
}

type Pong struct{}
