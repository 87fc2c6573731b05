package core

import "github.com/dkeye/Canvas/internal/domain"

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	Name        domain.RoomID `json:"name"`
	MemberCount int           `json:"client_count"`
}
