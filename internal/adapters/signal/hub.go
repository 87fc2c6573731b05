package signal

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/dkeye/Canvas/internal/app"
	"github.com/dkeye/Canvas/internal/core"
	"github.com/rs/zerolog/log"
)

// Hub maps session ids to live connections and implements core.Transport.
type Hub struct {
	mu     sync.RWMutex
	conns  map[core.SessionID]core.SignalConnection
	policy app.Policy
}

func NewHub(policy app.Policy) *Hub {
	if policy == nil {
		policy = app.SimplePolicy{Action: app.DropFrame}
	}
	return &Hub{
		conns:  make(map[core.SessionID]core.SignalConnection),
		policy: policy,
	}
}

func (h *Hub) Attach(sid core.SessionID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[sid] = conn
}

// Detach removes sid only while it still points at conn.
func (h *Hub) Detach(sid core.SessionID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.conns[sid]; ok && cur == conn {
		delete(h.conns, sid)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) SendTo(sid core.SessionID, event string, payload any) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Str("type", event).Msg("encode frame")
		return
	}
	h.send(sid, event, frame)
}

// SendToMany encodes once and offers the same frame to every target.
func (h *Hub) SendToMany(sids []core.SessionID, event string, payload any) {
	if len(sids) == 0 {
		return
	}
	frame, err := encodeFrame(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Str("type", event).Msg("encode frame")
		return
	}
	for _, sid := range sids {
		h.send(sid, event, frame)
	}
}

func (h *Hub) send(sid core.SessionID, event string, frame core.Frame) {
	h.mu.RLock()
	conn, ok := h.conns[sid]
	h.mu.RUnlock()
	if !ok {
		log.Debug().Str("module", "signal.hub").Str("sid", string(sid)).Str("type", event).Msg("target gone, frame dropped")
		return
	}

	err := conn.TrySend(frame)
	if err == nil {
		return
	}
	if !errors.Is(err, ErrBackpressure) {
		log.Debug().Err(err).Str("module", "signal.hub").Str("sid", string(sid)).Str("type", event).Msg("send failed")
		return
	}
	switch h.policy.OnBackPressure(sid) {
	case app.KickMember:
		log.Warn().Str("module", "signal.hub").Str("sid", string(sid)).Msg("slow client kicked")
		conn.Close()
	case app.DropFrame:
		log.Warn().Str("module", "signal.hub").Str("sid", string(sid)).Str("type", event).Msg("slow client, frame dropped")
	}
}

type outFrame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func encodeFrame(event string, payload any) (core.Frame, error) {
	return json.Marshal(outFrame{Type: event, Data: payload})
}
