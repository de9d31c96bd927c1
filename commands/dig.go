package commands

import (
	"strings"

	"EmberROM/internal/game"
)

var Dig = Define(Definition{
	Name:        "dig",
	Usage:       "dig <direction> <room-id> [title]",
	Description: "carve a new room off this one",
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	fields := strings.Fields(ctx.Arg)
	if len(fields) < 2 {
		usage(ctx)
		return false
	}
	dir, ok := game.ParseDirection(fields[0], true)
	if !ok {
		warn(ctx, "Which way is that?")
		return false
	}
	room, ok := currentRoom(ctx)
	if !ok {
		return false
	}
	if _, exists := room.ResolveExit(dir); exists {
		warn(ctx, "There is already an exit "+string(dir)+".")
		return false
	}

	id := game.RoomID(fields[1])
	title := strings.Join(fields[2:], " ")
	if title == "" {
		title = "An Unfinished Room"
	}
	created := game.NewRoom(id, title)
	if back, ok := dir.Opposite(); ok {
		created.Exits[back] = game.Exit{To: room.ID}
	}
	if err := ctx.World.AddRoom(room.AreaID, created); err != nil {
		warn(ctx, "A room with that id already exists.")
		return false
	}
	room.SetExit(dir, game.Exit{To: id})

	for _, r := range []*game.Room{room, created} {
		snap := r.Snapshot()
		if err := ctx.Realm.Store.SaveRoom(game.RoomRecord{
			ID:          snap.ID,
			AreaID:      snap.AreaID,
			Title:       snap.Title,
			Description: snap.Description,
			Exits:       snap.Exits,
		}); err != nil {
			warn(ctx, "The new room could not be persisted.")
			ctx.World.Logger().Error("dig persist failed")
			return false
		}
	}
	ctx.Player.MarkActive()
	reply(ctx, "\r\nYou carve out "+title+" to the "+string(dir)+".")
	return false
})
