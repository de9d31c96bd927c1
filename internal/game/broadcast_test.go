package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainWorld builds rooms r0 -> r1 -> ... -> r4 linked east to west.
func chainWorld(t *testing.T, length int) (*World, []*Room) {
	t.Helper()
	rooms := make(map[RoomID]*Room, length)
	ordered := make([]*Room, length)
	for i := 0; i < length; i++ {
		id := RoomID(fmt.Sprintf("r%d", i))
		room := NewRoom(id, fmt.Sprintf("Room %d", i))
		rooms[id] = room
		ordered[i] = room
	}
	for i := 0; i < length-1; i++ {
		ordered[i].SetExit(East, Exit{To: ordered[i+1].ID})
		ordered[i+1].SetExit(West, Exit{To: ordered[i].ID})
	}
	return NewWorldWithRooms(rooms), ordered
}

func playerIn(room *Room, name string) *Player {
	p := NewPlayer(name, DefaultAccess(), StatePlaying{})
	p.location = room.ID
	room.AddMember(p)
	return p
}

func TestShoutCarriesExactlyTwoHops(t *testing.T) {
	w, rooms := chainWorld(t, 5)
	shouter := playerIn(rooms[0], "Ani")
	shout := Shout{Room: rooms[0].ID, Text: "hello", Sender: shouter.Name}

	for i, want := range []bool{false, true, true, false, false} {
		name := fmt.Sprintf("Listener%d", i)
		listener := playerIn(rooms[i], name)
		if i == 0 {
			// the shouter's roommate still hears it
			_, heard := shout.RenderFor(w, listener)
			assert.True(t, heard, "same-room listener")
			continue
		}
		_, heard := shout.RenderFor(w, listener)
		assert.Equal(t, want, heard, "room %d", i)
	}

	_, echo := shout.RenderFor(w, shouter)
	assert.False(t, echo, "sender must not hear its own shout")
}

func TestSayStaysInRoom(t *testing.T) {
	w, rooms := chainWorld(t, 2)
	sender := playerIn(rooms[0], "Ani")
	near := playerIn(rooms[0], "Bea")
	far := playerIn(rooms[1], "Cal")

	say := Say{Room: rooms[0].ID, Text: "hi", Sender: sender.Name}
	_, heard := say.RenderFor(w, near)
	assert.True(t, heard)
	_, heard = say.RenderFor(w, far)
	assert.False(t, heard)
	_, heard = say.RenderFor(w, sender)
	assert.False(t, heard)
}

func TestTellReachesOnlyTarget(t *testing.T) {
	w, rooms := chainWorld(t, 2)
	target := playerIn(rooms[1], "Bea")
	other := playerIn(rooms[0], "Cal")

	tell := Tell{Target: "Bea", Text: "psst", Sender: "Ani"}
	_, heard := tell.RenderFor(w, target)
	assert.True(t, heard, "target hears a tell regardless of room")
	_, heard = tell.RenderFor(w, other)
	assert.False(t, heard)
}

func TestForceBroadcastSourceDisplay(t *testing.T) {
	w, rooms := chainWorld(t, 1)
	admin := playerIn(rooms[0], "Ovid")
	victim := playerIn(rooms[0], "Ani")

	named := Force{Text: "dance", Source: ForceSource{Admin: "Ovid"}}
	text, heard := named.RenderFor(w, victim)
	require.True(t, heard)
	assert.Contains(t, text, "Ovid")
	_, heard = named.RenderFor(w, admin)
	assert.False(t, heard, "a named admin does not receive its own untargeted force")

	anon := Force{Text: "dance", Source: ForceSource{Admin: "Ovid", Anonymous: true}}
	text, heard = anon.RenderFor(w, victim)
	require.True(t, heard)
	assert.Contains(t, text, "«system»")
	assert.NotContains(t, text, "Ovid")
	_, heard = anon.RenderFor(w, admin)
	assert.True(t, heard, "anonymous force reaches the issuing admin too")

	targeted := Force{Text: "dance", Target: "Ani", Source: ForceSource{Admin: "Ovid"}}
	_, heard = targeted.RenderFor(w, victim)
	assert.True(t, heard)
	_, heard = targeted.RenderFor(w, admin)
	assert.False(t, heard)
}

func TestChannelMessageFiltering(t *testing.T) {
	w, rooms := chainWorld(t, 1)
	subscriber := playerIn(rooms[0], "Ani")
	lurker := playerIn(rooms[0], "Bea")
	lurker.SetSubscriptions(map[Channel]bool{})

	msg := ChannelMessage{Channel: ChannelOOC, Text: "hi", Sender: "Cal"}
	text, heard := msg.RenderFor(w, subscriber)
	require.True(t, heard)
	assert.Contains(t, text, "[OOC]")
	_, heard = msg.RenderFor(w, lurker)
	assert.False(t, heard, "tuned-out players hear nothing")

	restricted := ChannelMessage{Channel: ChannelAdmin, Text: "ops", Sender: "Cal"}
	_, heard = restricted.RenderFor(w, subscriber)
	assert.False(t, heard, "admin channel requires admin access")

	adminP := playerIn(rooms[0], "Ovid")
	adminP.Access = AdminAccess()
	adminP.SetSubscriptions(map[Channel]bool{})
	_, heard = restricted.RenderFor(w, adminP)
	assert.True(t, heard, "always-on channel ignores the opt-in set")
}

func TestAlwaysOnChannelRejectsOptOut(t *testing.T) {
	p := NewPlayer("Ovid", AdminAccess(), StatePlaying{})
	require.False(t, p.SetSubscribed(ChannelAdmin, false))
	require.True(t, p.SetSubscribed(ChannelOOC, false))
	require.True(t, p.SetSubscribed(ChannelAdmin, true))
}

func TestRouterFanOutAndDrop(t *testing.T) {
	r := NewRouter()
	go r.Run()
	defer r.Close()

	id, sub := r.Subscribe()
	defer r.Unsubscribe(id)

	r.Publish(Tell{Target: "Ani", Text: "one", Sender: "Bea"})
	select {
	case got := <-sub:
		tell, ok := got.(Tell)
		require.True(t, ok)
		assert.Equal(t, "one", tell.Text)
	case <-time.After(time.Second):
		t.Fatal("broadcast never delivered")
	}
}

func TestRouterPublishNeverBlocks(t *testing.T) {
	r := NewRouter()
	// no Run goroutine: the intake fills and further publishes must drop
	for i := 0; i < publishBuffer*2; i++ {
		r.Publish(Say{Room: "root", Text: "x", Sender: "Ani"})
	}
}
