package game

// Area groups rooms that share a tick schedule. The tick divisor throttles how
// often the area acts: it runs only on ticks where uptime mod divisor is zero.
// Areas hold no back-pointer to the world; lookups always go through the
// registry so tearing down an owner never leaves dangling references.
type Area struct {
	ID          string
	Title       string
	Description string
	TickDivisor uint64

	rooms map[RoomID]*Room
}

// NewArea constructs an empty area. A zero divisor is normalised to one so
// the area ticks every cycle.
func NewArea(id, title string, divisor uint64) *Area {
	if divisor == 0 {
		divisor = 1
	}
	return &Area{
		ID:          id,
		Title:       title,
		TickDivisor: divisor,
		rooms:       make(map[RoomID]*Room),
	}
}

// DueAt reports whether the area should act on the given uptime tick.
func (a *Area) DueAt(uptime uint64) bool {
	divisor := a.TickDivisor
	if divisor == 0 {
		divisor = 1
	}
	return uptime%divisor == 0
}

// RoomIDs returns the ids of the rooms owned by the area.
func (a *Area) RoomIDs() []RoomID {
	ids := make([]RoomID, 0, len(a.rooms))
	for id := range a.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Tick advances the area's world content by one scheduled step. Content
// behaviors (resets, NPC actions) are supplied by collaborators; the core only
// drives the schedule.
func (a *Area) Tick(uptime uint64) {
	_ = uptime
}
