package orch

import (
	"github.com/dkeye/Canvas/internal/core"
	"github.com/dkeye/Canvas/internal/domain"
	"github.com/rs/zerolog/log"
)

// handleSignal forwards an offer, answer or ICE candidate to exactly one session.
// userId is always overwritten with the sender so peers cannot spoof each other.
func handleSignal(d *Dispatcher, sid core.SessionID, ev core.Event) []core.Outbound {
	e, ok := ev.(core.SignalEvent)
	if !ok {
		return nil
	}
	logger := log.With().Str("module", "orch").Str("sid", string(sid)).Str("target", string(e.Target)).Str("type", string(e.Type)).Logger()

	if !d.Registry.Connected(e.Target) {
		logger.Debug().Msg("signal target not connected")
		return nil
	}
	if d.opts.RequireSharedVoiceRoom && !d.Registry.SharesRoom(sid, e.Target, domain.Voice) {
		logger.Warn().Msg("signal target shares no voice room")
		return nil
	}
	logger.Debug().Msg("forwarding signal")
	return []core.Outbound{{
		To:      []core.SessionID{e.Target},
		Event:   string(e.Type),
		Payload: e.WithSender(sid),
	}}
}
