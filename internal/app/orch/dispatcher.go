package orch

import (
	"github.com/dkeye/Canvas/internal/app"
	"github.com/dkeye/Canvas/internal/core"
	"github.com/rs/zerolog/log"
)

// handler applies one event for sid and returns what must be delivered.
type handler func(d *Dispatcher, sid core.SessionID, ev core.Event) []core.Outbound

var handlers = map[core.EventKind]handler{
	core.KindJoin:         handleJoin,
	core.KindLeave:        handleLeave,
	core.KindDrawing:      handleBroadcast,
	core.KindNoteUpdate:   handleBroadcast,
	core.KindVoiceJoin:    handleVoiceJoin,
	core.KindVoiceLeave:   handleVoiceLeave,
	core.KindVoiceOffer:   handleSignal,
	core.KindVoiceAnswer:  handleSignal,
	core.KindICECandidate: handleSignal,
	core.KindWhoAmI:       handleWhoAmI,
	core.KindPing:         handlePing,
}

type Options struct {
	// RequireSharedVoiceRoom drops signaling between sessions with no voice room in common.
	RequireSharedVoiceRoom bool
}

// Dispatcher is the single entry point for inbound session events.
type Dispatcher struct {
	Registry  *app.Registry
	Transport core.Transport
	opts      Options
}

func NewDispatcher(reg *app.Registry, tr core.Transport, opts Options) *Dispatcher {
	return &Dispatcher{Registry: reg, Transport: tr, opts: opts}
}

// Connect registers a new session for a freshly opened connection.
func (d *Dispatcher) Connect() core.SessionID {
	return d.Registry.Register()
}

// Disconnect drops every membership of sid without notifying anyone.
func (d *Dispatcher) Disconnect(sid core.SessionID) {
	left := d.Registry.Unregister(sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).
		Strs("rooms", roomNames(left.Drawing)).
		Strs("voice_rooms", roomNames(left.Voice)).
		Msg("disconnect cleanup")
}

// Handle decodes one inbound frame, applies it and delivers the result.
func (d *Dispatcher) Handle(sid core.SessionID, frame core.Frame) {
	ev, err := core.DecodeEvent(frame)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("dropped inbound frame")
		return
	}
	d.Deliver(d.Apply(sid, ev))
}

// Apply mutates the directory for ev and returns the outbound messages without sending them.
func (d *Dispatcher) Apply(sid core.SessionID, ev core.Event) []core.Outbound {
	h, ok := handlers[ev.Kind()]
	if !ok {
		log.Warn().Str("module", "orch").Str("type", string(ev.Kind())).Msg("no handler for event")
		return nil
	}
	if !d.Registry.Connected(sid) {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("event from unknown session")
		return nil
	}
	return h(d, sid, ev)
}

func (d *Dispatcher) Deliver(out []core.Outbound) {
	if d.Transport == nil {
		return
	}
	for _, o := range out {
		switch len(o.To) {
		case 0:
		case 1:
			d.Transport.SendTo(o.To[0], o.Event, o.Payload)
		default:
			d.Transport.SendToMany(o.To, o.Event, o.Payload)
		}
	}
}

func toSender(sid core.SessionID, event string, payload any) []core.Outbound {
	return []core.Outbound{{To: []core.SessionID{sid}, Event: event, Payload: payload}}
}

func handleWhoAmI(d *Dispatcher, sid core.SessionID, _ core.Event) []core.Outbound {
	return toSender(sid, core.EventWhoAmI, core.Identity{
		UserID:     sid,
		Membership: d.Registry.MembershipOf(sid),
	})
}

func handlePing(_ *Dispatcher, sid core.SessionID, _ core.Event) []core.Outbound {
	return toSender(sid, core.EventPong, core.Pong{})
}
