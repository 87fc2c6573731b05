package app

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/dkeye/Canvas/internal/core"
	"github.com/dkeye/Canvas/internal/domain"
)

func TestRegistry_RegisterAllocatesUniqueIDs(t *testing.T) {
	r := NewRegistry()
	seen := make(map[core.SessionID]bool)
	for i := 0; i < 100; i++ {
		sid := r.Register()
		if sid == "" {
			t.Fatal("Register returned empty id")
		}
		if seen[sid] {
			t.Fatalf("Register returned duplicate id %q", sid)
		}
		seen[sid] = true
	}
	if got := r.SessionCount(); got != 100 {
		t.Fatalf("SessionCount=%d, want 100", got)
	}
}

func TestRegistry_RegisterRetriesOnCollision(t *testing.T) {
	r := NewRegistry()
	ids := []core.SessionID{"a", "a", "b"}
	r.newID = func() core.SessionID {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	if got := r.Register(); got != "a" {
		t.Fatalf("first Register=%q, want a", got)
	}
	if got := r.Register(); got != "b" {
		t.Fatalf("second Register=%q, want b", got)
	}
}

func TestRegistry_JoinReturnsOtherMembers(t *testing.T) {
	r := NewRegistry()
	a, b, c := r.Register(), r.Register(), r.Register()

	others, joined := r.Join("r1", a, domain.Drawing)
	if !joined || len(others) != 0 {
		t.Fatalf("first join: others=%v joined=%v, want [] true", others, joined)
	}
	if _, joined := r.Join("r1", b, domain.Drawing); !joined {
		t.Fatal("second join not applied")
	}
	others, _ = r.Join("r1", c, domain.Drawing)
	want := []core.SessionID{a, b}
	slices.Sort(want)
	if !slices.Equal(others, want) {
		t.Fatalf("others=%v, want %v", others, want)
	}
}

func TestRegistry_RejoinIsNoop(t *testing.T) {
	r := NewRegistry()
	a, b := r.Register(), r.Register()
	r.Join("r1", a, domain.Drawing)
	r.Join("r1", b, domain.Drawing)

	others, joined := r.Join("r1", b, domain.Drawing)
	if joined {
		t.Fatal("rejoin reported as a new join")
	}
	if !slices.Equal(others, []core.SessionID{a}) {
		t.Fatalf("others=%v, want [%s]", others, a)
	}
	if got := len(r.Members("r1", domain.Drawing)); got != 2 {
		t.Fatalf("members=%d, want 2", got)
	}
}

func TestRegistry_JoinUnknownSessionIsNoop(t *testing.T) {
	r := NewRegistry()
	if _, joined := r.Join("r1", "ghost", domain.Drawing); joined {
		t.Fatal("unknown session joined a room")
	}
	if got := r.Members("r1", domain.Drawing); len(got) != 0 {
		t.Fatalf("members=%v, want none", got)
	}
}

func TestRegistry_NamespacesAreDisjoint(t *testing.T) {
	r := NewRegistry()
	a := r.Register()
	r.Join("r1", a, domain.Voice)

	if got := r.Members("r1", domain.Drawing); len(got) != 0 {
		t.Fatalf("drawing members=%v, want none", got)
	}
	if got := r.Members("r1", domain.Voice); !slices.Equal(got, []core.SessionID{a}) {
		t.Fatalf("voice members=%v, want [%s]", got, a)
	}
}

func TestRegistry_LeaveReturnsRemaining(t *testing.T) {
	r := NewRegistry()
	a, b := r.Register(), r.Register()
	r.Join("r1", a, domain.Drawing)
	r.Join("r1", b, domain.Drawing)

	remaining, left := r.Leave("r1", a, domain.Drawing)
	if !left {
		t.Fatal("Leave reported not left")
	}
	if !slices.Equal(remaining, []core.SessionID{b}) {
		t.Fatalf("remaining=%v, want [%s]", remaining, b)
	}

	if _, left := r.Leave("r1", a, domain.Drawing); left {
		t.Fatal("second Leave reported left")
	}
	if _, left := r.Leave("nowhere", a, domain.Drawing); left {
		t.Fatal("Leave of unknown room reported left")
	}
	if m := r.MembershipOf(a); !m.Empty() {
		t.Fatalf("membership=%+v, want empty", m)
	}
}

func TestRegistry_EmptyRoomsAreReclaimed(t *testing.T) {
	r := NewRegistry()
	a := r.Register()
	r.Join("r1", a, domain.Drawing)
	if got := len(r.Rooms(domain.Drawing)); got != 1 {
		t.Fatalf("rooms=%d, want 1", got)
	}
	r.Leave("r1", a, domain.Drawing)
	if got := len(r.Rooms(domain.Drawing)); got != 0 {
		t.Fatalf("rooms=%d, want 0", got)
	}
}

func TestRegistry_UnregisterRemovesEveryMembership(t *testing.T) {
	r := NewRegistry()
	a, b := r.Register(), r.Register()
	for _, room := range []domain.RoomID{"r1", "r2"} {
		r.Join(room, a, domain.Drawing)
		r.Join(room, b, domain.Drawing)
	}
	r.Join(domain.VoiceRoomID("r1"), a, domain.Voice)

	left := r.Unregister(a)
	if !slices.Equal(left.Drawing, []domain.RoomID{"r1", "r2"}) {
		t.Fatalf("left drawing=%v, want [r1 r2]", left.Drawing)
	}
	if !slices.Equal(left.Voice, []domain.RoomID{"voice-r1"}) {
		t.Fatalf("left voice=%v, want [voice-r1]", left.Voice)
	}

	for _, room := range []domain.RoomID{"r1", "r2"} {
		if got := r.Members(room, domain.Drawing); !slices.Equal(got, []core.SessionID{b}) {
			t.Fatalf("%s members=%v, want [%s]", room, got, b)
		}
	}
	if got := r.Members("voice-r1", domain.Voice); len(got) != 0 {
		t.Fatalf("voice members=%v, want none", got)
	}
	if r.Connected(a) {
		t.Fatal("session still connected after Unregister")
	}

	if again := r.Unregister(a); !again.Empty() {
		t.Fatalf("second Unregister=%+v, want empty", again)
	}
}

func TestRegistry_LeaveAllKeepsSession(t *testing.T) {
	r := NewRegistry()
	a := r.Register()
	r.Join("r1", a, domain.Drawing)
	r.Join("voice-r1", a, domain.Voice)

	r.LeaveAll(a)
	if !r.Connected(a) {
		t.Fatal("LeaveAll unregistered the session")
	}
	if m := r.MembershipOf(a); !m.Empty() {
		t.Fatalf("membership=%+v, want empty", m)
	}
	if m := r.LeaveAll("ghost"); !m.Empty() {
		t.Fatalf("LeaveAll(ghost)=%+v, want empty", m)
	}
}

func TestRegistry_MembersExcluding(t *testing.T) {
	r := NewRegistry()
	a, b := r.Register(), r.Register()
	r.Join("r1", a, domain.Drawing)
	r.Join("r1", b, domain.Drawing)

	if got := r.MembersExcluding("r1", a, domain.Drawing); !slices.Equal(got, []core.SessionID{b}) {
		t.Fatalf("MembersExcluding=%v, want [%s]", got, b)
	}
	if got := r.MembersExcluding("unknown", a, domain.Drawing); got == nil || len(got) != 0 {
		t.Fatalf("MembersExcluding(unknown)=%v, want empty non-nil", got)
	}
}

func TestRegistry_SharesRoom(t *testing.T) {
	r := NewRegistry()
	a, b, c := r.Register(), r.Register(), r.Register()
	r.Join("voice-r1", a, domain.Voice)
	r.Join("voice-r1", b, domain.Voice)
	r.Join("r1", c, domain.Drawing)

	if !r.SharesRoom(a, b, domain.Voice) {
		t.Fatal("a and b should share voice-r1")
	}
	if r.SharesRoom(a, c, domain.Voice) {
		t.Fatal("a and c share no voice room")
	}
	if r.SharesRoom(a, "ghost", domain.Voice) {
		t.Fatal("unknown session shares nothing")
	}
}

// Membership must be the same relation seen from both sides after any interleaving.
func TestRegistry_ConcurrentJoinLeaveKeepsViewsConsistent(t *testing.T) {
	r := NewRegistry()
	const sessions = 32
	sids := make([]core.SessionID, sessions)
	for i := range sids {
		sids[i] = r.Register()
	}

	var wg sync.WaitGroup
	for i, sid := range sids {
		wg.Add(1)
		go func(i int, sid core.SessionID) {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				room := domain.RoomID(fmt.Sprintf("r%d", n%4))
				r.Join(room, sid, domain.Drawing)
				_ = r.MembersExcluding(room, sid, domain.Drawing)
				if (n+i)%3 == 0 {
					r.Leave(room, sid, domain.Drawing)
				}
			}
			if i%2 == 0 {
				r.Unregister(sid)
			}
		}(i, sid)
	}
	wg.Wait()

	for _, sid := range sids {
		for _, room := range r.MembershipOf(sid).Drawing {
			if !slices.Contains(r.Members(room, domain.Drawing), sid) {
				t.Fatalf("%s lists %s but room does not list it", sid, room)
			}
		}
	}
	for _, info := range r.Rooms(domain.Drawing) {
		for _, sid := range r.Members(info.Name, domain.Drawing) {
			if !r.Connected(sid) {
				t.Fatalf("room %s holds disconnected %s", info.Name, sid)
			}
			if !slices.Contains(r.MembershipOf(sid).Drawing, info.Name) {
				t.Fatalf("room %s lists %s but session does not list it", info.Name, sid)
			}
		}
	}
}
