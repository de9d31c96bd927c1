package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EmberROM/internal/game"
)

func TestChatPublishesChannelMessage(t *testing.T) {
	realm := testRealm(t)
	go realm.Router.Run()
	t.Cleanup(realm.Router.Close)

	ani := enterWorld(t, realm, "Ani", game.DefaultAccess())
	id, sub := realm.Router.Subscribe()
	t.Cleanup(func() { realm.Router.Unsubscribe(id) })

	Dispatch(realm, ani, "chat ooc hello all")
	assert.Contains(t, drainOutput(ani), "[OOC]")

	select {
	case b := <-sub:
		msg, ok := b.(game.ChannelMessage)
		require.True(t, ok)
		assert.Equal(t, game.ChannelOOC, msg.Channel)
		assert.Equal(t, "hello all", msg.Text)
	case <-time.After(time.Second):
		t.Fatal("channel message never published")
	}
}

func TestChatRequiresSubscription(t *testing.T) {
	realm := testRealm(t)
	ani := enterWorld(t, realm, "Ani", game.DefaultAccess())
	Dispatch(realm, ani, "channel ooc off")
	drainOutput(ani)

	Dispatch(realm, ani, "chat ooc hello")
	assert.Contains(t, drainOutput(ani), "tuned out")
}

func TestChannelToggleRejectsRestrictedAndAlwaysOn(t *testing.T) {
	realm := testRealm(t)
	ani := enterWorld(t, realm, "Ani", game.DefaultAccess())

	Dispatch(realm, ani, "channel builder on")
	assert.Contains(t, drainOutput(ani), "not open to you")

	admin := enterWorld(t, realm, "Ovid", game.AdminAccess())
	Dispatch(realm, admin, "channel admin off")
	assert.Contains(t, drainOutput(admin), "cannot be tuned out")
}

func TestChannelsListingShowsState(t *testing.T) {
	realm := testRealm(t)
	ani := enterWorld(t, realm, "Ani", game.DefaultAccess())
	Dispatch(realm, ani, "channels")
	out := drainOutput(ani)
	assert.Contains(t, out, "ooc")
	assert.Contains(t, out, "newbie")
	assert.NotContains(t, out, "builder", "restricted channels stay hidden")
}

func TestSayAndTell(t *testing.T) {
	realm := testRealm(t)
	go realm.Router.Run()
	t.Cleanup(realm.Router.Close)

	ani := enterWorld(t, realm, "Ani", game.DefaultAccess())

	Dispatch(realm, ani, "say")
	assert.Contains(t, drainOutput(ani), "Say what?")

	Dispatch(realm, ani, "say hello")
	assert.Contains(t, drainOutput(ani), "You say:")

	Dispatch(realm, ani, "tell Ghost hi")
	assert.Contains(t, drainOutput(ani), "Nobody by that name")

	Dispatch(realm, ani, "tell Ani hi")
	assert.Contains(t, drainOutput(ani), "yourself")
}
