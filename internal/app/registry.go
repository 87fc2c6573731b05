package app

import (
	"slices"
	"sync"

	"github.com/dkeye/Canvas/internal/core"
	"github.com/dkeye/Canvas/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type roomSet map[domain.RoomID]struct{}

type memberSet map[core.SessionID]struct{}

type sessionEntry struct {
	rooms [2]roomSet // indexed by domain.Namespace
}

// Registry owns live sessions and the room directory for both namespaces.
// One lock guards both views so membership reads used for delivery are never torn.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	rooms    [2]map[domain.RoomID]memberSet
	newID    func() core.SessionID
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		rooms: [2]map[domain.RoomID]memberSet{
			domain.Drawing: make(map[domain.RoomID]memberSet),
			domain.Voice:   make(map[domain.RoomID]memberSet),
		},
		newID: func() core.SessionID { return core.SessionID(uuid.NewString()) },
	}
}

// Register allocates a fresh session id. Called once per transport connect.
func (r *Registry) Register() core.SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	sid := r.newID()
	for {
		if _, taken := r.sessions[sid]; !taken {
			break
		}
		sid = r.newID()
	}
	r.sessions[sid] = &sessionEntry{rooms: [2]roomSet{make(roomSet), make(roomSet)}}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("sessions", len(r.sessions)).Msg("registered session")
	return sid
}

// Unregister drops the session and every membership it held. Safe to call twice.
func (r *Registry) Unregister(sid core.SessionID) domain.Membership {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return domain.Membership{}
	}
	left := r.leaveAllLocked(sid, entry)
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).
		Int("drawing_rooms", len(left.Drawing)).
		Int("voice_rooms", len(left.Voice)).
		Msg("unregistered session")
	return left
}

func (r *Registry) Connected(sid core.SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[sid]
	return ok
}

func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// MembershipOf reports the rooms sid belongs to. Unknown sessions yield an empty view.
func (r *Registry) MembershipOf(sid core.SessionID) domain.Membership {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return domain.Membership{}
	}
	return domain.Membership{
		Drawing: sortedRooms(entry.rooms[domain.Drawing]),
		Voice:   sortedRooms(entry.rooms[domain.Voice]),
	}
}

func sortedRooms(set roomSet) []domain.RoomID {
	out := make([]domain.RoomID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func sortedMembers(set memberSet, exclude core.SessionID) []core.SessionID {
	out := make([]core.SessionID, 0, len(set))
	for sid := range set {
		if sid == exclude {
			continue
		}
		out = append(out, sid)
	}
	slices.Sort(out)
	return out
}
