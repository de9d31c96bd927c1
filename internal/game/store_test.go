package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndLoadPlayer(t *testing.T) {
	store := openTestStore(t)
	rec := PlayerRecord{Name: "Ani", Access: DefaultAccess(), Location: "root"}
	require.NoError(t, store.CreatePlayer(rec, "Ember123"))

	loaded, err := store.LoadPlayer("Ani", "Ember123")
	require.NoError(t, err)
	assert.Equal(t, "Ani", loaded.Name)
	assert.Equal(t, RoomID("root"), loaded.Location)
	assert.NotEmpty(t, loaded.Hash)

	exists, err := store.PlayerExists("ani")
	require.NoError(t, err)
	assert.True(t, exists, "lookups are case-insensitive")
}

func TestLoadPlayerDistinguishesMissingFromWrongPassword(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreatePlayer(PlayerRecord{Name: "Ani"}, "Ember123"))

	_, err := store.LoadPlayer("Ani", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.LoadPlayer("Ghost", "Ember123")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCreatePlayerRejectsTakenName(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreatePlayer(PlayerRecord{Name: "Ani"}, "Ember123"))
	err := store.CreatePlayer(PlayerRecord{Name: "ani"}, "Other456x")
	assert.ErrorIs(t, err, ErrPlayerExists)
}

func TestSavePlayerPreservesStoredHash(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreatePlayer(PlayerRecord{Name: "Ani", Location: "root"}, "Ember123"))

	update := PlayerRecord{Name: "Ani", Location: "clearing", Channels: map[string]bool{"ooc": true}}
	require.NoError(t, store.SavePlayer(update))

	loaded, err := store.LoadPlayer("Ani", "Ember123")
	require.NoError(t, err, "password must survive a hashless save")
	assert.Equal(t, RoomID("clearing"), loaded.Location)
	assert.True(t, loaded.Channels["ooc"])
}

func TestRoomRecordsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	rec := RoomRecord{
		ID:          "cave",
		AreaID:      "root",
		Title:       "A Damp Cave",
		Description: "Water drips somewhere in the dark.",
		Exits:       map[Direction]Exit{East: {To: "root"}},
	}
	require.NoError(t, store.SaveRoom(rec))

	rooms, err := store.LoadRooms()
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, rec, rooms[0])
}

func TestHelpEntriesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SaveHelp(HelpEntry{Topic: "Channels", Text: "Use chat."}))

	entry, err := store.LoadHelp("  CHANNELS ")
	require.NoError(t, err)
	assert.Equal(t, "Use chat.", entry.Text)

	_, err = store.LoadHelp("missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestStoreLostItems(t *testing.T) {
	store := openTestStore(t)
	items := []LostItem{
		{Item: Item{Name: "a rusty key"}, Owner: "Ani", Reason: ErrRoomNotFound},
		{Item: Item{Name: "a torn map"}, Owner: "Bea"},
	}
	require.NoError(t, store.StoreLostItems(items))
	require.NoError(t, store.StoreLostItems(nil))
}
