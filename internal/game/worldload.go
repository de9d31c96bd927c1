package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// DefaultAreasPath is the on-disk location of bundled areas.
const DefaultAreasPath = "data/areas"

type areaFile struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TickDivisor uint64 `json:"tick_divisor,omitempty"`
	Rooms       []Room `json:"rooms"`
}

// LoadWorld reads every area file under areasPath, applies persisted builder
// room edits from the store, and validates the result. A missing areas
// directory yields a minimal built-in world so a fresh install still boots.
func LoadWorld(cfg Config, store *Store, log *zap.Logger) (*World, error) {
	w := NewWorld(cfg.WorldName, cfg.Root, log)
	w.Greeting = "Welcome, traveler."
	w.WelcomeBack = "The ember stirs as you return."
	w.WelcomeNew = "A new flame kindles. Walk carefully."

	areasPath := filepath.Join(cfg.DataDir, "areas")
	loaded, err := loadAreaFiles(areasPath)
	if err != nil {
		return nil, err
	}
	if len(loaded) == 0 {
		log.Warn("no area files found, using built-in world", zap.String("path", areasPath))
		loaded = []*Area{builtinRootArea(cfg.Root)}
	}
	for _, area := range loaded {
		if err := w.AddArea(area); err != nil {
			return nil, err
		}
	}

	if store != nil {
		records, err := store.LoadRooms()
		if err != nil {
			return nil, fmt.Errorf("load builder rooms: %w", err)
		}
		for _, rec := range records {
			applyRoomRecord(w, rec, log)
		}
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func loadAreaFiles(areasPath string) ([]*Area, error) {
	entries, err := os.ReadDir(areasPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read areas: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	areas := make([]*Area, 0, len(names))
	for _, name := range names {
		area, err := loadAreaFile(areasPath, name)
		if err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}
	return areas, nil
}

func loadAreaFile(areasPath, name string) (*Area, error) {
	data, err := os.ReadFile(filepath.Join(areasPath, name))
	if err != nil {
		return nil, fmt.Errorf("read area %s: %w", name, err)
	}
	var file areaFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode area %s: %w", name, err)
	}
	if file.ID == "" {
		return nil, fmt.Errorf("area %s has no id", name)
	}
	area := NewArea(file.ID, file.Title, file.TickDivisor)
	area.Description = file.Description
	for i := range file.Rooms {
		room := file.Rooms[i]
		if room.ID == "" {
			return nil, fmt.Errorf("area %s contains a room without an id", name)
		}
		if room.Exits == nil {
			room.Exits = make(map[Direction]Exit)
		}
		r := room
		if _, exists := area.rooms[r.ID]; exists {
			return nil, fmt.Errorf("area %s: duplicate room id %s", name, r.ID)
		}
		area.rooms[r.ID] = &r
	}
	return area, nil
}

// applyRoomRecord overlays one persisted builder edit. Records for rooms that
// no longer exist create new rooms when their area survives, otherwise they
// are logged and skipped.
func applyRoomRecord(w *World, rec RoomRecord, log *zap.Logger) {
	if room, ok := w.Room(rec.ID); ok {
		room.ApplyEdit(Room{
			Title:       rec.Title,
			Description: rec.Description,
			Exits:       rec.Exits,
		})
		return
	}
	room := NewRoom(rec.ID, rec.Title)
	room.Description = rec.Description
	for dir, exit := range rec.Exits {
		room.Exits[dir] = exit
	}
	if err := w.AddRoom(rec.AreaID, room); err != nil {
		log.Warn("orphaned builder room skipped",
			zap.String("room", string(rec.ID)),
			zap.String("area", rec.AreaID),
			zap.Error(err))
	}
}

// builtinRootArea is the fallback world: an entrance void and a clearing one
// step east of it.
func builtinRootArea(root Entrance) *Area {
	area := NewArea(root.Area, "The Root", 1)
	void := NewRoom(root.Room, "The Void")
	void.Description = "A featureless grey expanse. Somewhere east, light filters in."
	clearing := NewRoom(root.Room+"-clearing", "A Quiet Clearing")
	clearing.Description = "Soft grass and broken sunlight. The void lingers to the west."
	void.Exits[East] = Exit{To: clearing.ID}
	clearing.Exits[West] = Exit{To: void.ID}
	area.rooms[void.ID] = void
	area.rooms[clearing.ID] = clearing
	return area
}
