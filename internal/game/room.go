package game

import (
	"sort"
	"sync"
)

// RoomID is the world-unique identifier of a room.
type RoomID string

// ExitState describes whether an exit can currently be traversed.
type ExitState int

const (
	ExitOpen ExitState = iota
	ExitClosed
	ExitLocked
)

// Exit links a room to a destination in one direction.
type Exit struct {
	To    RoomID    `json:"to"`
	State ExitState `json:"state,omitempty"`
}

// Room is an atomic location: exits, item contents, and the set of players
// currently present. Each room carries its own guard so unrelated rooms can be
// touched concurrently without contending on the registry lock. Membership and
// items are guarded by mu; the identity fields are set at load time and only
// rewritten under the registry write lock by the room editor.
type Room struct {
	mu sync.Mutex

	ID          RoomID             `json:"id"`
	AreaID      string             `json:"-"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Exits       map[Direction]Exit `json:"exits"`

	items   []Item
	players map[string]*Player
}

// NewRoom constructs an empty room.
func NewRoom(id RoomID, title string) *Room {
	return &Room{
		ID:      id,
		Title:   title,
		Exits:   make(map[Direction]Exit),
		players: make(map[string]*Player),
	}
}

// AddMember records the player as present. It reports whether the player was
// newly added.
func (r *Room) AddMember(p *Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.players == nil {
		r.players = make(map[string]*Player)
	}
	if _, ok := r.players[p.Name]; ok {
		return false
	}
	r.players[p.Name] = p
	return true
}

// RemoveMember drops the player from the membership set. It reports whether
// the player was present.
func (r *Room) RemoveMember(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[name]; !ok {
		return false
	}
	delete(r.players, name)
	return true
}

// HasMember reports whether the named player is present.
func (r *Room) HasMember(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.players[name]
	return ok
}

// Members returns the names of all present players in sorted order.
func (r *Room) Members() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.players))
	for name := range r.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveExit looks up an exit by direction. Closed and locked exits are
// still returned; traversal policy belongs to the caller.
func (r *Room) ResolveExit(dir Direction) (Exit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exit, ok := r.Exits[dir]
	return exit, ok
}

// ExitDirections returns the room's exit directions in sorted order.
func (r *Room) ExitDirections() []Direction {
	r.mu.Lock()
	defer r.mu.Unlock()
	dirs := make([]Direction, 0, len(r.Exits))
	for dir := range r.Exits {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	return dirs
}

// SetExit installs or replaces an exit.
func (r *Room) SetExit(dir Direction, exit Exit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Exits == nil {
		r.Exits = make(map[Direction]Exit)
	}
	r.Exits[dir] = exit
}

// Items returns a copy of the items lying in the room.
func (r *Room) Items() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return nil
	}
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// AddItem places an item into the room.
func (r *Room) AddItem(item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
}

// TakeItem removes and returns the item matching the provided name.
func (r *Room) TakeItem(name string) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := findItemIndex(r.items, name)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}
	item := r.items[idx]
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return item, nil
}

// Snapshot copies the room's editable fields into a detached working copy for
// the room editor.
func (r *Room) Snapshot() Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	copyRoom := Room{
		ID:          r.ID,
		AreaID:      r.AreaID,
		Title:       r.Title,
		Description: r.Description,
		Exits:       make(map[Direction]Exit, len(r.Exits)),
	}
	for dir, exit := range r.Exits {
		copyRoom.Exits[dir] = exit
	}
	return copyRoom
}

// ApplyEdit overwrites the room's editable fields from a working copy.
func (r *Room) ApplyEdit(edit Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Title = edit.Title
	r.Description = edit.Description
	if edit.Exits != nil {
		r.Exits = make(map[Direction]Exit, len(edit.Exits))
		for dir, exit := range edit.Exits {
			r.Exits[dir] = exit
		}
	}
}
