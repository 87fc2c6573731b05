package orch

import (
	"github.com/dkeye/Canvas/internal/core"
	"github.com/dkeye/Canvas/internal/domain"
	"github.com/rs/zerolog/log"
)

func handleJoin(d *Dispatcher, sid core.SessionID, ev core.Event) []core.Outbound {
	e, ok := ev.(core.RoomEvent)
	if !ok {
		return nil
	}
	others, joined := d.Registry.Join(e.Room, sid, domain.Drawing)
	if !joined || len(others) == 0 {
		return nil
	}
	return []core.Outbound{{
		To:      others,
		Event:   core.EventUserJoined,
		Payload: core.MemberNotice{Room: e.Room, UserID: sid},
	}}
}

// handleLeave notifies whoever is still in the room; the leaver is already gone
// from the member set so it never receives its own notice.
// Notices are sent only for real leaves: a session that was not a member sends nothing.
func handleLeave(d *Dispatcher, sid core.SessionID, ev core.Event) []core.Outbound {
	e, ok := ev.(core.RoomEvent)
	if !ok {
		return nil
	}
	remaining, left := d.Registry.Leave(e.Room, sid, domain.Drawing)
	if !left || len(remaining) == 0 {
		return nil
	}
	return []core.Outbound{{
		To:      remaining,
		Event:   core.EventUserLeft,
		Payload: core.MemberNotice{Room: e.Room, UserID: sid},
	}}
}

// handleBroadcast fans drawing and note payloads out verbatim. The sender does
// not need to be a member of the room.
func handleBroadcast(d *Dispatcher, sid core.SessionID, ev core.Event) []core.Outbound {
	e, ok := ev.(core.BroadcastEvent)
	if !ok {
		return nil
	}
	to := d.Registry.MembersExcluding(e.Room, sid, domain.Drawing)
	if len(to) == 0 {
		return nil
	}
	log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("room", string(e.Room)).Str("type", string(e.Type)).Int("targets", len(to)).Msg("broadcast")
	return []core.Outbound{{To: to, Event: string(e.Type), Payload: e.Payload}}
}

func handleVoiceJoin(d *Dispatcher, sid core.SessionID, ev core.Event) []core.Outbound {
	e, ok := ev.(core.RoomEvent)
	if !ok {
		return nil
	}
	others, joined := d.Registry.Join(domain.VoiceRoomID(e.Room), sid, domain.Voice)
	if !joined || len(others) == 0 {
		return nil
	}
	return []core.Outbound{{
		To:      others,
		Event:   core.EventVoiceUserJoined,
		Payload: core.PeerNotice{UserID: sid},
	}}
}

// handleVoiceLeave mirrors handleLeave for voice rooms; only real leaves are announced.
func handleVoiceLeave(d *Dispatcher, sid core.SessionID, ev core.Event) []core.Outbound {
	e, ok := ev.(core.RoomEvent)
	if !ok {
		return nil
	}
	remaining, left := d.Registry.Leave(domain.VoiceRoomID(e.Room), sid, domain.Voice)
	if !left || len(remaining) == 0 {
		return nil
	}
	return []core.Outbound{{
		To:      remaining,
		Event:   core.EventVoiceUserLeft,
		Payload: core.PeerNotice{UserID: sid},
	}}
}

func roomNames(ids []domain.RoomID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
