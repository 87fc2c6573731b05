package app

import (
	"cmp"
	"slices"

	"github.com/dkeye/Canvas/internal/core"
	"github.com/dkeye/Canvas/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join adds sid to the room and returns the other members at that instant.
// joined is false when sid was already a member or is not registered.
func (r *Registry) Join(room domain.RoomID, sid core.SessionID, ns domain.Namespace) (others []core.SessionID, joined bool) {
	if !validNamespace(ns) {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return nil, false
	}
	members := r.rooms[ns][room]
	if _, already := members[sid]; already {
		return sortedMembers(members, sid), false
	}
	if members == nil {
		members = make(memberSet)
		r.rooms[ns][room] = members
	}
	others = sortedMembers(members, sid)
	members[sid] = struct{}{}
	entry.rooms[ns][room] = struct{}{}
	log.Info().Str("module", "app.directory").Str("sid", string(sid)).Str("ns", ns.String()).Str("room", string(room)).Int("members", len(members)).Msg("joined")
	return others, true
}

// Leave removes sid from the room and returns who is still in it.
// left is false when sid was not a member.
func (r *Registry) Leave(room domain.RoomID, sid core.SessionID, ns domain.Namespace) (remaining []core.SessionID, left bool) {
	if !validNamespace(ns) {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	left = r.removeLocked(room, sid, ns)
	if left {
		log.Info().Str("module", "app.directory").Str("sid", string(sid)).Str("ns", ns.String()).Str("room", string(room)).Msg("left")
	}
	return sortedMembers(r.rooms[ns][room], sid), left
}

// LeaveAll removes sid from every room in both namespaces without unregistering it.
func (r *Registry) LeaveAll(sid core.SessionID) domain.Membership {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return domain.Membership{}
	}
	return r.leaveAllLocked(sid, entry)
}

func (r *Registry) Members(room domain.RoomID, ns domain.Namespace) []core.SessionID {
	return r.MembersExcluding(room, "", ns)
}

// MembersExcluding is the broadcast set for events that skip their sender.
func (r *Registry) MembersExcluding(room domain.RoomID, sid core.SessionID, ns domain.Namespace) []core.SessionID {
	if !validNamespace(ns) {
		return []core.SessionID{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedMembers(r.rooms[ns][room], sid)
}

// SharesRoom reports whether a and b are both members of at least one room in ns.
func (r *Registry) SharesRoom(a, b core.SessionID, ns domain.Namespace) bool {
	if !validNamespace(ns) {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ea, ok := r.sessions[a]
	if !ok {
		return false
	}
	eb, ok := r.sessions[b]
	if !ok {
		return false
	}
	for room := range ea.rooms[ns] {
		if _, ok := eb.rooms[ns][room]; ok {
			return true
		}
	}
	return false
}

func (r *Registry) Rooms(ns domain.Namespace) []core.RoomInfo {
	if !validNamespace(ns) {
		return []core.RoomInfo{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms[ns]))
	for id, members := range r.rooms[ns] {
		out = append(out, core.RoomInfo{Name: id, MemberCount: len(members)})
	}
	slices.SortFunc(out, func(a, b core.RoomInfo) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func (r *Registry) leaveAllLocked(sid core.SessionID, entry *sessionEntry) domain.Membership {
	left := domain.Membership{
		Drawing: sortedRooms(entry.rooms[domain.Drawing]),
		Voice:   sortedRooms(entry.rooms[domain.Voice]),
	}
	for _, room := range left.Drawing {
		r.removeLocked(room, sid, domain.Drawing)
	}
	for _, room := range left.Voice {
		r.removeLocked(room, sid, domain.Voice)
	}
	return left
}

// removeLocked updates both views of the relation; empty rooms are reclaimed.
func (r *Registry) removeLocked(room domain.RoomID, sid core.SessionID, ns domain.Namespace) bool {
	members, ok := r.rooms[ns][room]
	if !ok {
		return false
	}
	if _, ok := members[sid]; !ok {
		return false
	}
	delete(members, sid)
	if len(members) == 0 {
		delete(r.rooms[ns], room)
	}
	if entry, ok := r.sessions[sid]; ok {
		delete(entry.rooms[ns], room)
	}
	return true
}

func validNamespace(ns domain.Namespace) bool {
	return ns == domain.Drawing || ns == domain.Voice
}
