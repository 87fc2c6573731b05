package domain

import "strings"

type RoomID string

// Namespace separates collaboration rooms from voice rooms so equal ids never collide.
type Namespace uint8

const (
	Drawing Namespace = iota
	Voice
)

const voicePrefix = "voice-"

func (n Namespace) String() string {
	switch n {
	case Drawing:
		return "drawing"
	case Voice:
		return "voice"
	default:
		return "unknown"
	}
}

// VoiceRoomID maps a board room id onto its voice-room key.
func VoiceRoomID(room RoomID) RoomID {
	return RoomID(voicePrefix + string(room))
}

// BoardRoomID is the inverse of VoiceRoomID.
func BoardRoomID(voice RoomID) RoomID {
	return RoomID(strings.TrimPrefix(string(voice), voicePrefix))
}
