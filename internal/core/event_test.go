package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeEvent_RoomEvents(t *testing.T) {
	for _, kind := range []EventKind{KindJoin, KindLeave, KindVoiceJoin, KindVoiceLeave} {
		ev, err := DecodeEvent(Frame(`{"type":"` + string(kind) + `","data":{"room":"r1"}}`))
		if err != nil {
			t.Fatalf("DecodeEvent(%s): %v", kind, err)
		}
		re, ok := ev.(RoomEvent)
		if !ok {
			t.Fatalf("DecodeEvent(%s) type=%T, want RoomEvent", kind, ev)
		}
		if re.Kind() != kind || re.Room != "r1" {
			t.Fatalf("DecodeEvent(%s)=%+v", kind, re)
		}
	}
}

func TestDecodeEvent_MissingRoom(t *testing.T) {
	cases := []string{
		`{"type":"join"}`,
		`{"type":"join","data":null}`,
		`{"type":"join","data":{}}`,
		`{"type":"join","data":{"room":""}}`,
		`{"type":"join","data":{"room":42}}`,
		`{"type":"drawing","data":{"tool":"pen"}}`,
		`{"type":"voice-join","data":{}}`,
	}
	for _, raw := range cases {
		if _, err := DecodeEvent(Frame(raw)); !errors.Is(err, ErrMissingField) {
			t.Fatalf("DecodeEvent(%s) err=%v, want %v", raw, err, ErrMissingField)
		}
	}
}

func TestDecodeEvent_DrawingKeepsPayloadVerbatim(t *testing.T) {
	raw := `{"room":"r1","tool":"pen","points":[1,2,3]}`
	ev, err := DecodeEvent(Frame(`{"type":"drawing","data":` + raw + `}`))
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	be := ev.(BroadcastEvent)
	if be.Room != "r1" {
		t.Fatalf("room=%q, want r1", be.Room)
	}
	if string(be.Payload) != raw {
		t.Fatalf("payload=%s, want %s", be.Payload, raw)
	}
}

func TestDecodeEvent_SignalRequiresTarget(t *testing.T) {
	if _, err := DecodeEvent(Frame(`{"type":"voice-offer","data":{"sdp":"x"}}`)); !errors.Is(err, ErrMissingField) {
		t.Fatalf("err=%v, want %v", err, ErrMissingField)
	}

	ev, err := DecodeEvent(Frame(`{"type":"ice-candidate","data":{"targetUserId":"b","candidate":"c","userId":"spoofed"}}`))
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	se := ev.(SignalEvent)
	if se.Target != "b" {
		t.Fatalf("target=%q, want b", se.Target)
	}

	fields := se.WithSender("a")
	var uid string
	if err := json.Unmarshal(fields["userId"], &uid); err != nil || uid != "a" {
		t.Fatalf("userId=%s err=%v, want a", fields["userId"], err)
	}
	if string(se.Fields["userId"]) != `"spoofed"` {
		t.Fatal("WithSender must not mutate the decoded fields")
	}
}

func TestDecodeEvent_Rejects(t *testing.T) {
	if _, err := DecodeEvent(Frame(`not json`)); !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("err=%v, want %v", err, ErrMalformedFrame)
	}
	if _, err := DecodeEvent(Frame(`{"data":{}}`)); !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("err=%v, want %v", err, ErrMalformedFrame)
	}
	if _, err := DecodeEvent(Frame(`{"type":"voice-signal","data":{"to":"x"}}`)); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("err=%v, want %v", err, ErrUnknownEvent)
	}
}

func TestDecodeEvent_ControlIgnoresData(t *testing.T) {
	ev, err := DecodeEvent(Frame(`{"type":"ping"}`))
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if ev.Kind() != KindPing {
		t.Fatalf("kind=%s, want %s", ev.Kind(), KindPing)
	}
}
