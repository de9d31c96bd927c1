package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EmberROM/internal/game"
)

func testRealm(t *testing.T) *game.Realm {
	t.Helper()
	void := game.NewRoom("root", "The Void")
	void.Description = "A featureless grey expanse."
	clearing := game.NewRoom("clearing", "A Quiet Clearing")
	void.SetExit(game.East, game.Exit{To: clearing.ID})
	clearing.SetExit(game.West, game.Exit{To: void.ID})
	shed := game.NewRoom("shed", "A Locked Shed")
	void.SetExit(game.North, game.Exit{To: shed.ID, State: game.ExitLocked})

	w := game.NewWorldWithRooms(map[game.RoomID]*game.Room{
		void.ID: void, clearing.ID: clearing, shed.ID: shed,
	})
	store, err := game.OpenStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return &game.Realm{
		World:    w,
		Router:   game.NewRouter(),
		Store:    store,
		Settings: game.NewSettings(game.DefaultConfig()),
	}
}

func enterWorld(t *testing.T, realm *game.Realm, name string, access game.Access) *game.Player {
	t.Helper()
	p := game.NewPlayer(name, access, game.StatePlaying{})
	require.NoError(t, realm.World.AttachPlayer(p, name+":1"))
	_, err := game.TranslocateToRoot(realm.World, p)
	require.NoError(t, err)
	return p
}

func drainOutput(p *game.Player) string {
	var b strings.Builder
	for {
		select {
		case msg := <-p.Output:
			b.WriteString(msg)
		default:
			return b.String()
		}
	}
}

func TestDispatchUnrecognizedCommand(t *testing.T) {
	realm := testRealm(t)
	p := enterWorld(t, realm, "Ani", game.DefaultAccess())

	quit := Dispatch(realm, p, "warble loudly")
	assert.False(t, quit)
	assert.Contains(t, drainOutput(p), "Unrecognized command")
}

func TestDispatchEmptyLineIsIgnored(t *testing.T) {
	realm := testRealm(t)
	p := enterWorld(t, realm, "Ani", game.DefaultAccess())
	assert.False(t, Dispatch(realm, p, "   "))
	assert.Empty(t, drainOutput(p))
}

func TestGlobalCommandsReachableFromEditor(t *testing.T) {
	realm := testRealm(t)
	p := enterWorld(t, realm, "Ovid", game.AdminAccess())

	Dispatch(realm, p, "redit")
	_, editing := p.State().(game.StateEditing)
	require.True(t, editing)
	drainOutput(p)

	quit := Dispatch(realm, p, "who")
	assert.False(t, quit)
	assert.Contains(t, drainOutput(p), "connected")
}

func TestEditorVerbsUnavailableWhilePlaying(t *testing.T) {
	realm := testRealm(t)
	p := enterWorld(t, realm, "Ani", game.DefaultAccess())

	Dispatch(realm, p, "title A Renamed Room")
	assert.Contains(t, drainOutput(p), "Unrecognized command")
}

func TestQuitEntersLoggingOut(t *testing.T) {
	realm := testRealm(t)
	p := enterWorld(t, realm, "Ani", game.DefaultAccess())

	quit := Dispatch(realm, p, "quit")
	assert.True(t, quit)
	_, loggingOut := p.State().(game.StateLoggingOut)
	assert.True(t, loggingOut)
}

func TestAdminCommandsMaskedFromPlayers(t *testing.T) {
	realm := testRealm(t)
	p := enterWorld(t, realm, "Ani", game.DefaultAccess())

	// Admin verbs answer exactly like a verb that does not exist.
	Dispatch(realm, p, "force Bea dance")
	assert.Contains(t, drainOutput(p), "Unrecognized command")

	Dispatch(realm, p, "set autosave 60")
	assert.Contains(t, drainOutput(p), "Unrecognized command")

	Dispatch(realm, p, "dig east annex")
	assert.Contains(t, drainOutput(p), "Only builders")
}

func TestHelpListingHidesAdminVerbs(t *testing.T) {
	realm := testRealm(t)
	p := enterWorld(t, realm, "Ani", game.DefaultAccess())

	Dispatch(realm, p, "help")
	listing := drainOutput(p)
	assert.NotContains(t, listing, "force")
	assert.NotContains(t, listing, "translocate")
	assert.Contains(t, listing, "goto")

	admin := enterWorld(t, realm, "Ovid", game.AdminAccess())
	Dispatch(realm, admin, "help")
	assert.Contains(t, drainOutput(admin), "force")
}

func TestSetAutosaveAdjustsSettings(t *testing.T) {
	realm := testRealm(t)
	admin := enterWorld(t, realm, "Ovid", game.AdminAccess())

	Dispatch(realm, admin, "set autosave 60")
	assert.Contains(t, drainOutput(admin), "Autosave interval set to 60s")
	assert.Equal(t, float64(60), realm.Settings.AutosaveInterval().Seconds())

	Dispatch(realm, admin, "set autosave zero")
	assert.Contains(t, drainOutput(admin), "whole seconds")
}
