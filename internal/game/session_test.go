package game

import (
	"io"
	"net"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRealm(t *testing.T) *Realm {
	t.Helper()
	w, _, _ := twoRoomWorld(t)
	router := NewRouter()
	go router.Run()
	t.Cleanup(router.Close)
	return &Realm{
		World:    w,
		Router:   router,
		Store:    openTestStore(t),
		Settings: NewSettings(DefaultConfig()),
	}
}

// clientHarness collects everything the server writes while feeding it a
// scripted sequence of input lines.
type clientHarness struct {
	conn net.Conn
	mu   sync.Mutex
	out  []byte
	done chan struct{}
}

func newClientHarness(conn net.Conn) *clientHarness {
	h := &clientHarness{conn: conn, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		buf := make([]byte, 512)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				h.mu.Lock()
				h.out = append(h.out, buf[:n]...)
				h.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	return h
}

func (h *clientHarness) send(t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		_, err := io.WriteString(h.conn, line+"\r\n")
		require.NoError(t, err)
	}
}

func (h *clientHarness) transcript() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return string(h.out)
}

func echoDispatcher(realm *Realm, p *Player, line string) bool {
	if line == "quit" {
		p.ResetState(StateLoggingOut{})
		return true
	}
	p.Send("\r\necho: " + line)
	return false
}

func runSession(t *testing.T, realm *Realm) (*clientHarness, chan struct{}) {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	harness := newClientHarness(clientConn)
	session := NewSession(realm, NewTelnetSession(serverConn), NewNameScreen(), echoDispatcher)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		session.Run("test:1")
	}()
	return harness, finished
}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish in time")
	}
}

func TestSessionCreatesCharacterAndLogsOut(t *testing.T) {
	realm := testRealm(t)
	harness, finished := runSession(t, realm)

	harness.send(t, "Ani", "Ember123", "Ember123", "look around", "quit")
	waitFor(t, finished)

	transcript := harness.transcript()
	assert.Contains(t, transcript, "By what name")
	assert.Contains(t, transcript, "Retype the password")
	assert.Contains(t, transcript, "echo: look around")

	rec, err := realm.Store.LoadPlayer("Ani", "Ember123")
	require.NoError(t, err)
	assert.Equal(t, "Ani", rec.Name)

	_, connected := realm.World.Player("Ani")
	assert.False(t, connected, "session must detach on quit")
	pending := realm.World.DrainLogoutQueue()
	require.Len(t, pending, 1)
	assert.Equal(t, realm.World.Root().Room, pending[0].Location())
}

func TestSessionRejectsWeakAndMismatchedPasswords(t *testing.T) {
	realm := testRealm(t)
	harness, finished := runSession(t, realm)

	harness.send(t,
		"Ani",
		"short", "short",    // confirmed but too weak, back to password
		"Ember123", "other", // verify mismatch, back to password
		"Ember123", "Ember123",
		"quit")
	waitFor(t, finished)

	transcript := harness.transcript()
	assert.Contains(t, transcript, "at least eight characters")
	assert.Contains(t, transcript, "do not match")

	_, err := realm.Store.LoadPlayer("Ani", "Ember123")
	assert.NoError(t, err)
}

func TestSessionWrongPasswordReturnsToNameEntry(t *testing.T) {
	realm := testRealm(t)
	require.NoError(t, realm.Store.CreatePlayer(PlayerRecord{Name: "Ani", Location: "root"}, "Ember123"))

	harness, finished := runSession(t, realm)
	harness.send(t,
		"Ani", "NotIt999x",
		"Ani", "Ember123",
		"quit")
	waitFor(t, finished)

	transcript := harness.transcript()
	assert.Contains(t, transcript, "not the password")
}

func TestSessionBlocksReservedNames(t *testing.T) {
	realm := testRealm(t)
	harness, finished := runSession(t, realm)

	harness.send(t,
		"admin", // reserved
		"Ani", "Ember123", "Ember123",
		"quit")
	waitFor(t, finished)

	assert.Contains(t, harness.transcript(), "may not be used")
}

func TestSessionVanishedSavedLocationFallsBackToRoot(t *testing.T) {
	realm := testRealm(t)
	require.NoError(t, realm.Store.CreatePlayer(PlayerRecord{Name: "Ani", Location: "demolished"}, "Ember123"))

	harness, finished := runSession(t, realm)
	harness.send(t, "Ani", "Ember123", "quit")
	waitFor(t, finished)

	assert.Contains(t, harness.transcript(), "no longer exists")
	pending := realm.World.DrainLogoutQueue()
	require.Len(t, pending, 1)
	assert.Equal(t, realm.World.Root().Room, pending[0].Location())
}

func TestSessionAbruptDisconnectSynthesizesLogout(t *testing.T) {
	realm := testRealm(t)
	harness, finished := runSession(t, realm)

	harness.send(t, "Ani", "Ember123", "Ember123")
	require.Eventually(t, func() bool {
		_, ok := realm.World.Player("Ani")
		return ok
	}, 5*time.Second, 10*time.Millisecond, "player never attached")

	require.NoError(t, harness.conn.Close())
	waitFor(t, finished)

	pending := realm.World.DrainLogoutQueue()
	require.Len(t, pending, 1)
	_, loggingOut := pending[0].State().(StateLoggingOut)
	assert.True(t, loggingOut)
}

func TestSessionReaderExitsAfterQuit(t *testing.T) {
	realm := testRealm(t)
	harness, finished := runSession(t, realm)

	// Pipeline a line behind quit so the reader has already pulled it from
	// the connection when the main loop returns.
	harness.send(t, "Ani", "Ember123", "Ember123", "quit\r\nsay hi")
	waitFor(t, finished)

	require.Eventually(t, func() bool {
		buf := make([]byte, 1<<16)
		stack := string(buf[:runtime.Stack(buf, true)])
		return !strings.Contains(stack, "readLines")
	}, 2*time.Second, 20*time.Millisecond, "reader goroutine still running after session end")
}

func TestPlayerFromRecordRestoresSubscriptionsAndItems(t *testing.T) {
	rec := PlayerRecord{
		Name:     "Ani",
		Access:   DefaultAccess(),
		Location: "clearing",
		Channels: map[string]bool{"ooc": true, "bogus": true},
		Items:    []Item{{Name: "a torn map"}},
	}
	p := playerFromRecord(rec)
	assert.Equal(t, RoomID("clearing"), p.Location())
	assert.True(t, p.Subscribed(ChannelOOC))
	assert.False(t, p.Subscribed(ChannelQA), "saved set replaces the defaults")
	require.Len(t, p.Inventory(), 1)
	assert.Zero(t, p.ActivityCount())
}
