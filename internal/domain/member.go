// Package domain contains entities without logic, just meta-data
package domain

// Membership is a read-only view of the rooms a session currently belongs to.
type Membership struct {
	Drawing []RoomID `json:"drawing"`
	Voice   []RoomID `json:"voice"`
}

func (m Membership) Empty() bool {
	return len(m.Drawing) == 0 && len(m.Voice) == 0
}
