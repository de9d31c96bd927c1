package commands

import (
	"strings"

	"EmberROM/internal/game"
)

var Translocate = Define(Definition{
	Name:        "translocate",
	Aliases:     []string{"teleport"},
	Usage:       "translocate <room> [player]",
	Description: "move yourself, or another player, to any room",
	Admin:       true,
}, func(ctx *Context) bool {
	if !requireAdmin(ctx) {
		return false
	}
	roomArg, playerArg, _ := strings.Cut(ctx.Arg, " ")
	if roomArg == "" {
		usage(ctx)
		return false
	}
	dest := game.RoomID(roomArg)
	if _, ok := ctx.World.Room(dest); !ok {
		warn(ctx, "No such room.")
		return false
	}

	target := ctx.Player
	if playerArg = strings.TrimSpace(playerArg); playerArg != "" {
		found, ok := ctx.World.FindPlayer(playerArg)
		if !ok {
			warn(ctx, "Nobody by that name is here.")
			return false
		}
		target = found
	}

	source := target.Location()
	if _, err := game.Translocate(ctx.World, &source, dest, target); err != nil {
		warn(ctx, "The translocation fizzles.")
		return false
	}
	ctx.Realm.Router.Publish(game.RoomEvent{
		Room:  source,
		Actor: target.Name,
		Text:  game.HighlightName(target.Name) + " vanishes in a shimmer of light.",
	})
	ctx.Realm.Router.Publish(game.RoomEvent{
		Room:  dest,
		Actor: target.Name,
		Text:  game.HighlightName(target.Name) + " appears in a shimmer of light.",
	})
	if target != ctx.Player {
		target.Send("\r\nA force beyond you relocates your being.")
		reply(ctx, "\r\n"+game.HighlightName(target.Name)+" has been moved.")
	}
	if room, ok := ctx.World.Room(dest); ok {
		target.Send("\r\n" + game.DescribeRoom(room, target.Name))
	}
	return false
})

var Return = Define(Definition{
	Name:        "return",
	Aliases:     []string{"recall"},
	Usage:       "return",
	Description: "return to the entrance",
}, func(ctx *Context) bool {
	source := ctx.Player.Location()
	if _, err := game.Translocate(ctx.World, &source, ctx.World.Root().Room, ctx.Player); err != nil {
		warn(ctx, "The way back is barred.")
		return false
	}
	if room, ok := currentRoom(ctx); ok {
		reply(ctx, "\r\n"+game.DescribeRoom(room, ctx.Player.Name))
	}
	return false
})
