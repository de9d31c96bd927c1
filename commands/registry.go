package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"EmberROM/internal/game"
)

// Mode selects which verb table a command lives in. Dispatch picks the table
// from the player's session state and falls back to the global table when the
// mode table has no match.
type Mode string

const (
	// ModeGlobal commands work in every session state.
	ModeGlobal Mode = "global"
	// ModePlaying commands work only in the normal command mode.
	ModePlaying Mode = "playing"
	// ModeRoomEditor commands work inside the room editor.
	ModeRoomEditor Mode = "redit"
	// ModeHelpEditor commands work inside the help editor.
	ModeHelpEditor Mode = "hedit"
)

// Definition describes a single command's metadata.
type Definition struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Mode        Mode

	// Admin verbs are hidden from everyone else: the handler answers with
	// the unknown-command line and help omits them.
	Admin bool
}

// Handler executes a command.
// Returning true indicates the connection should terminate.
type Handler func(*Context) bool

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Context provides the runtime data available to a command handler.
type Context struct {
	Realm   *game.Realm
	World   *game.World
	Player  *game.Player
	Raw     string
	Arg     string
	Input   string
	Command *Command
}

var (
	registryMu sync.RWMutex
	tables     = map[Mode]map[string]*Command{}
	ordered    []*Command
)

// Define registers a new command using the provided definition and handler.
// It panics when metadata is incomplete or duplicates an existing command in
// the same table.
func Define(def Definition, handler Handler) *Command {
	if handler == nil {
		panic("commands: handler must not be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		panic("commands: command must have a name")
	}
	if def.Mode == "" {
		def.Mode = ModePlaying
	}

	cmd := &Command{Definition: def, Handler: handler}

	registryMu.Lock()
	defer registryMu.Unlock()

	table := tables[def.Mode]
	if table == nil {
		table = make(map[string]*Command)
		tables[def.Mode] = table
	}
	registerName := func(name string) {
		key := strings.ToLower(name)
		if _, exists := table[key]; exists {
			panic(fmt.Sprintf("commands: duplicate registration for %q in %s", name, def.Mode))
		}
		table[key] = cmd
	}
	registerName(def.Name)
	for _, alias := range def.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		registerName(alias)
	}

	ordered = append(ordered, cmd)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	return cmd
}

// All returns the registered commands sorted by primary name.
func All() []*Command {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]*Command, len(ordered))
	copy(out, ordered)
	return out
}

// modeFor maps session state onto a verb table.
func modeFor(state game.State) Mode {
	editing, ok := state.(game.StateEditing)
	if !ok {
		return ModePlaying
	}
	switch editing.Mode.(type) {
	case game.EditHelp:
		return ModeHelpEditor
	default:
		return ModeRoomEditor
	}
}

func lookup(mode Mode, name string) (*Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if table := tables[mode]; table != nil {
		if cmd, ok := table[name]; ok {
			return cmd, true
		}
	}
	if mode != ModeGlobal {
		if cmd, ok := tables[ModeGlobal][name]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// Dispatch parses the input line, resolves the command against the player's
// current mode table with global fallback, and executes it. It satisfies
// game.Dispatcher.
func Dispatch(realm *game.Realm, player *game.Player, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	name := strings.ToLower(parts[0])

	cmd, ok := lookup(modeFor(player.State()), name)
	if !ok {
		player.Send(game.Ansi(unknownCommand))
		return false
	}

	arg := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
	ctx := &Context{
		Realm:   realm,
		World:   realm.World,
		Player:  player,
		Raw:     line,
		Arg:     arg,
		Input:   parts[0],
		Command: cmd,
	}
	game.CountCommand()
	return cmd.Handler(ctx)
}
