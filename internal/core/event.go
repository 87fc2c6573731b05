package core

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Canvas/internal/domain"
)

var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrMissingField   = errors.New("missing required field")
)

type EventKind string

// Inbound event kinds.
const (
	KindJoin         EventKind = "join"
	KindLeave        EventKind = "leave"
	KindDrawing      EventKind = "drawing"
	KindNoteUpdate   EventKind = "note_update"
	KindVoiceJoin    EventKind = "voice-join"
	KindVoiceLeave   EventKind = "voice-leave"
	KindVoiceOffer   EventKind = "voice-offer"
	KindVoiceAnswer  EventKind = "voice-answer"
	KindICECandidate EventKind = "ice-candidate"
	KindWhoAmI       EventKind = "whoami"
	KindPing         EventKind = "ping"
)

// Event is the closed set of inbound messages understood by the dispatcher.
type Event interface {
	Kind() EventKind
	isEvent()
}

// RoomEvent covers membership changes: join, leave, voice-join, voice-leave.
type RoomEvent struct {
	Type EventKind
	Room domain.RoomID
}

// BroadcastEvent carries an opaque payload to be fanned out to a room.
type BroadcastEvent struct {
	Type    EventKind
	Room    domain.RoomID
	Payload json.RawMessage
}

// SignalEvent is a WebRTC negotiation message addressed to one session.
type SignalEvent struct {
	Type   EventKind
	Target SessionID
	Fields map[string]json.RawMessage
}

// ControlEvent has no payload and is answered to the sender only.
type ControlEvent struct {
	Type EventKind
}

func (e RoomEvent) Kind() EventKind      { return e.Type }
func (e BroadcastEvent) Kind() EventKind { return e.Type }
func (e SignalEvent) Kind() EventKind    { return e.Type }
func (e ControlEvent) Kind() EventKind   { return e.Type }

func (RoomEvent) isEvent()      {}
func (BroadcastEvent) isEvent() {}
func (SignalEvent) isEvent()    {}
func (ControlEvent) isEvent()   {}

// WithSender returns a copy of the signaling fields with userId set to sid.
func (e SignalEvent) WithSender(sid SessionID) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(e.Fields)+1)
	for k, v := range e.Fields {
		out[k] = v
	}
	// a string always marshals
	raw, _ := json.Marshal(string(sid))
	out["userId"] = raw
	return out
}

type envelope struct {
	Type EventKind       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// DecodeEvent parses a {"type": ..., "data": {...}} frame into an Event.
func DecodeEvent(frame Frame) (Event, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch env.Type {
	case KindJoin, KindLeave, KindVoiceJoin, KindVoiceLeave:
		fields, err := decodeObject(env)
		if err != nil {
			return nil, err
		}
		room, err := stringField(fields, "room")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", env.Type, err)
		}
		return RoomEvent{Type: env.Type, Room: domain.RoomID(room)}, nil

	case KindDrawing, KindNoteUpdate:
		fields, err := decodeObject(env)
		if err != nil {
			return nil, err
		}
		room, err := stringField(fields, "room")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", env.Type, err)
		}
		return BroadcastEvent{Type: env.Type, Room: domain.RoomID(room), Payload: env.Data}, nil

	case KindVoiceOffer, KindVoiceAnswer, KindICECandidate:
		fields, err := decodeObject(env)
		if err != nil {
			return nil, err
		}
		target, err := stringField(fields, "targetUserId")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", env.Type, err)
		}
		return SignalEvent{Type: env.Type, Target: SessionID(target), Fields: fields}, nil

	case KindWhoAmI, KindPing:
		return ControlEvent{Type: env.Type}, nil

	case "":
		return nil, fmt.Errorf("%w: no type", ErrMalformedFrame)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
}

func decodeObject(env envelope) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%s: %w: data", env.Type, ErrMissingField)
	}
	return fields, nil
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return s, nil
}
