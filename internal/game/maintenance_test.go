package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRealmPieces(t *testing.T) (*World, *Store, *Settings) {
	t.Helper()
	w, _, _ := twoRoomWorld(t)
	store := openTestStore(t)
	settings := NewSettings(DefaultConfig())
	return w, store, settings
}

func TestFlushLogoutsDetachesAndPersists(t *testing.T) {
	w, store, settings := testRealmPieces(t)
	require.NoError(t, store.CreatePlayer(PlayerRecord{Name: "Ani", Location: "root"}, "Ember123"))

	p := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	require.NoError(t, w.AttachPlayer(p, "a:1"))
	_, err := TranslocateToRoot(w, p)
	require.NoError(t, err)
	src := p.Location()
	_, err = Translocate(w, &src, "clearing", p)
	require.NoError(t, err)

	w.DetachPlayer("Ani")
	room, _ := w.Room("clearing")
	require.True(t, room.HasMember("Ani"), "detach defers room removal to maintenance")

	m := NewMaintenance(w, store, settings)
	m.FlushLogouts()

	assert.False(t, room.HasMember("Ani"))
	loaded, err := store.LoadPlayer("Ani", "Ember123")
	require.NoError(t, err)
	assert.Equal(t, RoomID("clearing"), loaded.Location)
	assert.Zero(t, p.ActivityCount())
}

func TestAutosaveHonorsThreshold(t *testing.T) {
	w, store, settings := testRealmPieces(t)
	require.NoError(t, store.CreatePlayer(PlayerRecord{Name: "Ani", Location: "root"}, "Ember123"))
	require.NoError(t, store.CreatePlayer(PlayerRecord{Name: "Bea", Location: "root"}, "Ember123"))

	busy := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	idle := NewPlayer("Bea", DefaultAccess(), StatePlaying{})
	require.NoError(t, w.AttachPlayer(busy, "a:1"))
	require.NoError(t, w.AttachPlayer(idle, "b:1"))

	busy.location = "clearing"
	for i := 0; i < settings.AutosaveThreshold(); i++ {
		busy.MarkActive()
	}
	idle.MarkActive()

	m := NewMaintenance(w, store, settings)
	m.Autosave()

	assert.Zero(t, busy.ActivityCount(), "busy player was saved and reset")
	assert.Equal(t, 1, idle.ActivityCount(), "idle player stays untouched")

	loaded, err := store.LoadPlayer("Ani", "Ember123")
	require.NoError(t, err)
	assert.Equal(t, RoomID("clearing"), loaded.Location)
}

func TestSweepLostItemsEmptiesQueue(t *testing.T) {
	w, store, settings := testRealmPieces(t)
	w.ReportLostItem(Item{Name: "a rusty key"}, "Ani", ErrRoomNotFound)

	m := NewMaintenance(w, store, settings)
	m.SweepLostItems()
	assert.Empty(t, w.DrainLostItems())
}

func TestSettingsCell(t *testing.T) {
	settings := NewSettings(Config{AutosaveSeconds: 120, AutosaveThreshold: 8})
	assert.Equal(t, 2*time.Minute, settings.AutosaveInterval())
	assert.Equal(t, 8, settings.AutosaveThreshold())

	require.NoError(t, settings.SetAutosaveInterval(30*time.Second))
	assert.Equal(t, 30*time.Second, settings.AutosaveInterval())

	err := settings.SetAutosaveInterval(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrIntervalTooShort)
	assert.Equal(t, 30*time.Second, settings.AutosaveInterval())
}

func TestRecordForSnapshotsPlayer(t *testing.T) {
	p := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	p.location = "clearing"
	p.AddItem(Item{Name: "a torn map"})
	require.True(t, p.SetSubscribed(ChannelOOC, false))

	rec := RecordFor(p)
	assert.Equal(t, "Ani", rec.Name)
	assert.Equal(t, RoomID("clearing"), rec.Location)
	require.Len(t, rec.Items, 1)
	assert.False(t, rec.Channels["ooc"])
	assert.True(t, rec.Channels["qa"])
}
