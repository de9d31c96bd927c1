package game

import (
	"fmt"

	"go.uber.org/zap"
)

// TranslocateResult reports how a completed translocation went.
type TranslocateResult int

const (
	// TranslocateOK means destination placement and source detachment both
	// completed.
	TranslocateOK TranslocateResult = iota
	// TranslocateSourceLost means the destination placement completed but the
	// source room could not be resolved for detachment. Soft and non-fatal:
	// the player is in the destination regardless.
	TranslocateSourceLost
)

// Translocate is the single choke-point for moving a player between rooms.
// All movement-producing commands route through here so room membership and
// player location can never disagree.
//
// A nil source marks a fresh entry from the void and is treated identically
// to a source that no longer resolves. When source equals destination the
// call is an idempotent no-op: no duplicate membership, no activity bump.
//
// Lock order: the destination room's guard is fully acquired and released
// before the source room's guard is touched. The same rule applies everywhere
// two rooms are involved, which is what keeps the membership graph
// deadlock-free.
func Translocate(w *World, source *RoomID, dest RoomID, p *Player) (TranslocateResult, error) {
	destRoom, ok := w.Room(dest)
	if !ok {
		return TranslocateOK, fmt.Errorf("destination %q: %w", dest, ErrRoomNotFound)
	}

	if source != nil && *source == dest {
		return TranslocateOK, nil
	}

	destRoom.AddMember(p)
	p.SetLocation(dest)
	translocations.Inc()

	if source == nil {
		return TranslocateSourceLost, nil
	}
	srcRoom, ok := w.Room(*source)
	if !ok {
		w.log.Warn("translocation source vanished",
			zap.String("player", p.Name),
			zap.String("source", string(*source)),
			zap.String("dest", string(dest)))
		return TranslocateSourceLost, nil
	}
	srcRoom.RemoveMember(p.Name)
	return TranslocateOK, nil
}

// TranslocateToRoot drops the player at the world's root entrance, used for
// fresh sessions and for saved locations that no longer resolve.
func TranslocateToRoot(w *World, p *Player) (TranslocateResult, error) {
	return Translocate(w, nil, w.Root().Room, p)
}
