package game

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrRoomNotFound indicates the requested room does not exist.
	ErrRoomNotFound = errors.New("room not found")
	// ErrAreaNotFound indicates the requested area does not exist.
	ErrAreaNotFound = errors.New("area not found")
	// ErrRoomExists indicates a duplicate room id.
	ErrRoomExists = errors.New("room already exists")
	// ErrPlayerNotFound indicates no connected player matches the lookup.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrAlreadyConnected indicates the character already has a live session.
	ErrAlreadyConnected = errors.New("already connected")
)

// Entrance names the world's root area:room pair. Every new session starts
// there and every player whose saved location no longer resolves is dropped
// back into it.
type Entrance struct {
	Area string `yaml:"area" json:"area"`
	Room RoomID `yaml:"room" json:"room"`
}

// DefaultEntrance is the conventional root:root pair.
func DefaultEntrance() Entrance {
	return Entrance{Area: "root", Room: "root"}
}

// World is the shared registry of areas, rooms, and players. All connection
// goroutines and both background loops reach it through one handle. The
// registry lock guards the index maps only; rooms and players carry their own
// guards, and no guard is ever held across disk I/O.
type World struct {
	mu sync.RWMutex

	Title       string
	Description string
	Greeting    string
	WelcomeBack string
	WelcomeNew  string

	root  Entrance
	areas map[string]*Area
	rooms map[RoomID]*Room

	players       map[string]*Player
	playersByAddr map[string]*Player
	logoutQueue   []*Player
	lostAndFound  []LostItem

	log *zap.Logger
}

// NewWorld constructs an empty world with the given root entrance. Validate
// must pass before the world is served.
func NewWorld(title string, root Entrance, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		Title:         title,
		root:          root,
		areas:         make(map[string]*Area),
		rooms:         make(map[RoomID]*Room),
		players:       make(map[string]*Player),
		playersByAddr: make(map[string]*Player),
		log:           log,
	}
}

// NewWorldWithRooms builds a world from a flat room set under a single area,
// for tests and tools.
func NewWorldWithRooms(rooms map[RoomID]*Room) *World {
	w := NewWorld("test world", DefaultEntrance(), zap.NewNop())
	area := NewArea("root", "Root", 1)
	for id, room := range rooms {
		room.AreaID = area.ID
		area.rooms[id] = room
		w.rooms[id] = room
	}
	w.areas[area.ID] = area
	if _, ok := w.rooms[w.root.Room]; !ok {
		for id := range rooms {
			w.root.Room = id
			break
		}
	}
	return w
}

// Logger exposes the world's logger for collaborators that act on it.
func (w *World) Logger() *zap.Logger { return w.log }

// Root returns the world's root entrance.
func (w *World) Root() Entrance {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.root
}

// Validate checks the invariant that the root entrance resolves to an
// existing room inside an existing area.
func (w *World) Validate() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	area, ok := w.areas[w.root.Area]
	if !ok {
		return fmt.Errorf("root area %q: %w", w.root.Area, ErrAreaNotFound)
	}
	if _, ok := area.rooms[w.root.Room]; !ok {
		return fmt.Errorf("root room %q: %w", w.root.Room, ErrRoomNotFound)
	}
	return nil
}

// AddArea registers an area and its rooms into the flattened room index.
func (w *World) AddArea(area *Area) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id := range area.rooms {
		if _, exists := w.rooms[id]; exists {
			return fmt.Errorf("room %q: %w", id, ErrRoomExists)
		}
	}
	w.areas[area.ID] = area
	for id, room := range area.rooms {
		room.AreaID = area.ID
		w.rooms[id] = room
	}
	return nil
}

// Area looks up an area by id.
func (w *World) Area(id string) (*Area, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	area, ok := w.areas[id]
	return area, ok
}

// Areas returns all areas in id order.
func (w *World) Areas() []*Area {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Area, 0, len(w.areas))
	for _, area := range w.areas {
		out = append(out, area)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Room looks up a room in the flattened index.
func (w *World) Room(id RoomID) (*Room, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	room, ok := w.rooms[id]
	return room, ok
}

// AddRoom registers a new room under an existing area.
func (w *World) AddRoom(areaID string, room *Room) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	area, ok := w.areas[areaID]
	if !ok {
		return fmt.Errorf("area %q: %w", areaID, ErrAreaNotFound)
	}
	if _, exists := w.rooms[room.ID]; exists {
		return fmt.Errorf("room %q: %w", room.ID, ErrRoomExists)
	}
	room.AreaID = areaID
	area.rooms[room.ID] = room
	w.rooms[room.ID] = room
	return nil
}

// AttachPlayer inserts a player into both indices. The two maps are only ever
// written through this method and DetachPlayer so they cannot drift apart.
func (w *World) AttachPlayer(p *Player, addr string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.players[p.Name]; ok {
		return fmt.Errorf("%s: %w", p.Name, ErrAlreadyConnected)
	}
	p.Addr = addr
	w.players[p.Name] = p
	w.playersByAddr[addr] = p
	connectedPlayers.Inc()
	return nil
}

// DetachPlayer removes a player from both indices and enqueues it for the
// maintenance loop's deferred save and room detachment. Persistence never
// happens inline here.
func (w *World) DetachPlayer(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[name]
	if !ok {
		return
	}
	delete(w.players, name)
	delete(w.playersByAddr, p.Addr)
	w.logoutQueue = append(w.logoutQueue, p)
	connectedPlayers.Dec()
}

// Player looks up a connected player by character name.
func (w *World) Player(name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[name]
	return p, ok
}

// PlayerByAddr looks up a connected player by connection address.
func (w *World) PlayerByAddr(addr string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.playersByAddr[addr]
	return p, ok
}

// FindPlayer locates a connected player by name with case-insensitive prefix
// matching.
func (w *World) FindPlayer(name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if p, ok := w.players[name]; ok {
		return p, true
	}
	candidates := make([]*Player, 0, len(w.players))
	names := make([]string, 0, len(w.players))
	for _, p := range w.players {
		candidates = append(candidates, p)
		names = append(names, p.Name)
	}
	idx, ok := uniqueMatch(name, names, false)
	if !ok {
		return nil, false
	}
	return candidates[idx], true
}

// Players returns all connected players in name order.
func (w *World) Players() []*Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DrainLogoutQueue removes and returns every player pending logout
// persistence.
func (w *World) DrainLogoutQueue() []*Player {
	w.mu.Lock()
	defer w.mu.Unlock()
	pending := w.logoutQueue
	w.logoutQueue = nil
	return pending
}

// ReportLostItem queues an item that failed to be placed anywhere for the
// lost-and-found sweep.
func (w *World) ReportLostItem(item Item, owner string, reason error) {
	w.mu.Lock()
	w.lostAndFound = append(w.lostAndFound, LostItem{Item: item, Owner: owner, Reason: reason})
	w.mu.Unlock()
	w.log.Warn("item fell into the void",
		zap.String("item", item.Name),
		zap.String("owner", owner),
		zap.Error(reason))
}

// DrainLostItems removes and returns the queued lost items.
func (w *World) DrainLostItems() []LostItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	drained := w.lostAndFound
	w.lostAndFound = nil
	return drained
}

// RoomsWithin returns the set of room ids reachable from origin in at most
// radius hops, computed breadth-first over the exit graph. The origin itself
// is included; rooms beyond the radius never appear.
func (w *World) RoomsWithin(origin RoomID, radius int) map[RoomID]struct{} {
	w.mu.RLock()
	defer w.mu.RUnlock()
	reachable := map[RoomID]struct{}{}
	if _, ok := w.rooms[origin]; !ok {
		return reachable
	}
	reachable[origin] = struct{}{}
	frontier := []RoomID{origin}
	for depth := 0; depth < radius; depth++ {
		next := make([]RoomID, 0, len(frontier))
		for _, id := range frontier {
			room := w.rooms[id]
			room.mu.Lock()
			for _, exit := range room.Exits {
				if _, seen := reachable[exit.To]; seen {
					continue
				}
				if _, ok := w.rooms[exit.To]; !ok {
					continue
				}
				reachable[exit.To] = struct{}{}
				next = append(next, exit.To)
			}
			room.mu.Unlock()
		}
		frontier = next
	}
	return reachable
}

// Tick advances every area that is due at the given uptime tick.
func (w *World) Tick(uptime uint64) {
	w.mu.RLock()
	areas := make([]*Area, 0, len(w.areas))
	for _, area := range w.areas {
		areas = append(areas, area)
	}
	w.mu.RUnlock()
	for _, area := range areas {
		if area.DueAt(uptime) {
			area.Tick(uptime)
		}
	}
}
