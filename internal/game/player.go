package game

import (
	"sync"
	"time"
)

// outputBuffer is the per-connection broadcast/output queue depth. A saturated
// buffer silently drops messages for that connection only.
const outputBuffer = 32

// EditSession carries an in-progress edit: a detached working copy of a room
// or help entry plus a dirty flag. Saving writes the copy back through the
// registry or store; aborting discards it.
type EditSession struct {
	Mode  EditorMode
	Room  *Room
	Help  *HelpEntry
	Dirty bool
}

// Player is one connected (or logging-out) character. Each player carries its
// own guard so unrelated players can be mutated concurrently without touching
// the registry lock. The Output channel is written with non-blocking sends
// everywhere so a stalled client never wedges a publisher.
type Player struct {
	mu sync.Mutex

	Name   string
	Addr   string
	Access Access
	Output chan string

	location RoomID
	states   []State
	channels map[Channel]bool
	inv      []Item
	acts     int
	edit     *EditSession

	JoinedAt time.Time
}

// NewPlayer constructs a player in the given starting state. The state stack
// always holds at least one entry.
func NewPlayer(name string, access Access, initial State) *Player {
	return &Player{
		Name:     name,
		Access:   access,
		Output:   make(chan string, outputBuffer),
		states:   []State{initial},
		channels: DefaultChannelSubscriptions(),
		JoinedAt: time.Now(),
	}
}

// Location returns the id of the room the player believes it occupies.
func (p *Player) Location() RoomID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.location
}

// SetLocation records the player's room. It reports whether the location
// actually changed and bumps the activity counter only when it did.
func (p *Player) SetLocation(room RoomID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.location == room {
		return false
	}
	p.location = room
	p.acts++
	return true
}

// State returns the top of the state stack. The stack never drains below one
// entry, so this cannot fail.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.states[len(p.states)-1]
}

// PushState enters a nested session state (an editor, typically).
func (p *Player) PushState(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states = append(p.states, s)
}

// PopState leaves the current nested state. The bottom entry is preserved.
func (p *Player) PopState() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.states) > 1 {
		p.states = p.states[:len(p.states)-1]
	}
}

// ResetState collapses the stack to a single entry.
func (p *Player) ResetState(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states = []State{s}
}

// Playing reports whether the player is in the normal command mode. Broadcast
// delivery is suppressed in every other state so editor output is never
// corrupted.
func (p *Player) Playing() bool {
	_, ok := p.State().(StatePlaying)
	return ok
}

// Subscribed reports whether the player has opted in to the channel.
func (p *Player) Subscribed(channel Channel) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channels[channel]
}

// SetSubscribed opts the player in or out of a channel. Opt-out against an
// always-on channel is rejected and leaves the subscription set unchanged.
func (p *Player) SetSubscribed(channel Channel, on bool) bool {
	if !on && channel.AlwaysOn() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channels == nil {
		p.channels = make(map[Channel]bool)
	}
	if on {
		p.channels[channel] = true
	} else {
		delete(p.channels, channel)
	}
	return true
}

// Subscriptions returns a copy of the opt-in set.
func (p *Player) Subscriptions() map[Channel]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneChannelSubscriptions(p.channels)
}

// SetSubscriptions replaces the opt-in set wholesale (used when loading a
// saved record).
func (p *Player) SetSubscriptions(subs map[Channel]bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = cloneChannelSubscriptions(subs)
}

// ActivityCount returns the number of state-changing actions since the last
// save.
func (p *Player) ActivityCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acts
}

// MarkActive bumps the activity counter.
func (p *Player) MarkActive() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acts++
}

// ResetActivity clears the activity counter after a successful save.
func (p *Player) ResetActivity() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acts = 0
}

// Inventory returns a copy of the carried items.
func (p *Player) Inventory() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.inv) == 0 {
		return nil
	}
	out := make([]Item, len(p.inv))
	copy(out, p.inv)
	return out
}

// AddItem places an item into the inventory.
func (p *Player) AddItem(item Item) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inv = append(p.inv, item)
	p.acts++
}

// RemoveItem takes the named item out of the inventory.
func (p *Player) RemoveItem(name string) (Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := findItemIndex(p.inv, name)
	if idx < 0 {
		return Item{}, ErrItemNotCarried
	}
	item := p.inv[idx]
	p.inv = append(p.inv[:idx], p.inv[idx+1:]...)
	p.acts++
	return item, nil
}

// Edit returns the in-progress edit payload, or nil outside editors.
func (p *Player) Edit() *EditSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edit
}

// SetEdit installs or clears the edit payload.
func (p *Player) SetEdit(edit *EditSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.edit = edit
}

// Send queues a message for the player's connection, dropping it when the
// buffer is saturated.
func (p *Player) Send(msg string) {
	select {
	case p.Output <- msg:
	default:
		droppedOutputs.Inc()
	}
}
