package game

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func twoRoomWorld(t *testing.T) (*World, *Room, *Room) {
	t.Helper()
	void := NewRoom("root", "The Void")
	clearing := NewRoom("clearing", "A Quiet Clearing")
	void.SetExit(East, Exit{To: clearing.ID})
	clearing.SetExit(West, Exit{To: void.ID})
	w := NewWorldWithRooms(map[RoomID]*Room{void.ID: void, clearing.ID: clearing})
	return w, void, clearing
}

func TestTranslocateMovesMembershipAndLocation(t *testing.T) {
	w, void, clearing := twoRoomWorld(t)
	p := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	_, err := TranslocateToRoot(w, p)
	require.NoError(t, err)
	require.True(t, void.HasMember("Ani"))

	source := p.Location()
	result, err := Translocate(w, &source, clearing.ID, p)
	require.NoError(t, err)
	require.Equal(t, TranslocateOK, result)
	require.Equal(t, clearing.ID, p.Location())
	require.True(t, clearing.HasMember("Ani"))
	require.False(t, void.HasMember("Ani"))
}

func TestTranslocateSameRoomIsNoOp(t *testing.T) {
	w, void, _ := twoRoomWorld(t)
	p := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	_, err := TranslocateToRoot(w, p)
	require.NoError(t, err)
	p.ResetActivity()

	source := p.Location()
	result, err := Translocate(w, &source, void.ID, p)
	require.NoError(t, err)
	require.Equal(t, TranslocateOK, result)
	require.Equal(t, void.ID, p.Location())
	require.True(t, void.HasMember("Ani"))
	require.Zero(t, p.ActivityCount(), "repeat placement must not count as activity")
	require.Len(t, void.Members(), 1)
}

func TestTranslocateUnknownDestinationLeavesStateUntouched(t *testing.T) {
	w, void, _ := twoRoomWorld(t)
	p := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	_, err := TranslocateToRoot(w, p)
	require.NoError(t, err)

	source := p.Location()
	_, err = Translocate(w, &source, "nowhere", p)
	require.ErrorIs(t, err, ErrRoomNotFound)
	require.Equal(t, void.ID, p.Location())
	require.True(t, void.HasMember("Ani"))
}

func TestTranslocateVanishedSourceIsSoft(t *testing.T) {
	w, _, clearing := twoRoomWorld(t)
	p := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	ghost := RoomID("demolished")
	p.location = ghost

	result, err := Translocate(w, &ghost, clearing.ID, p)
	require.NoError(t, err)
	require.Equal(t, TranslocateSourceLost, result)
	require.Equal(t, clearing.ID, p.Location())
	require.True(t, clearing.HasMember("Ani"))
}

func TestTranslocateNilSourceMeansFreshEntry(t *testing.T) {
	w, _, clearing := twoRoomWorld(t)
	p := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	result, err := Translocate(w, nil, clearing.ID, p)
	require.NoError(t, err)
	require.Equal(t, TranslocateSourceLost, result)
	require.True(t, clearing.HasMember("Ani"))
}

func TestConcurrentOpposingTranslocationsDoNotDeadlock(t *testing.T) {
	w, void, clearing := twoRoomWorld(t)
	const pairs = 50
	var wg sync.WaitGroup
	for i := 0; i < pairs; i++ {
		a := NewPlayer(string(rune('A'+i%26))+"one", DefaultAccess(), StatePlaying{})
		b := NewPlayer(string(rune('A'+i%26))+"two", DefaultAccess(), StatePlaying{})
		a.location = void.ID
		b.location = clearing.ID
		void.AddMember(a)
		clearing.AddMember(b)
		wg.Add(2)
		go func() {
			defer wg.Done()
			src := void.ID
			_, _ = Translocate(w, &src, clearing.ID, a)
		}()
		go func() {
			defer wg.Done()
			src := clearing.ID
			_, _ = Translocate(w, &src, void.ID, b)
		}()
	}
	wg.Wait()
}

func TestTranslocateErrorsWrapSentinels(t *testing.T) {
	w, _, _ := twoRoomWorld(t)
	p := NewPlayer("Ani", DefaultAccess(), StatePlaying{})
	_, err := Translocate(w, nil, "missing", p)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrRoomNotFound))
}
