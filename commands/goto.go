package commands

import (
	"fmt"

	"EmberROM/internal/game"
)

var Goto = Define(Definition{
	Name:        "goto",
	Aliases:     []string{"go"},
	Usage:       "goto <direction>",
	Description: "walk through an exit",
}, func(ctx *Context) bool {
	if ctx.Arg == "" {
		usage(ctx)
		return false
	}
	dir, ok := game.ParseDirection(ctx.Arg, true)
	if !ok {
		warn(ctx, "Which way is that?")
		return false
	}
	move(ctx, dir)
	return false
})

// The compass shorthands dispatch into the same walk path as goto.
func init() {
	directions := []struct {
		dir     game.Direction
		aliases []string
	}{
		{game.North, []string{"n"}},
		{game.East, []string{"e"}},
		{game.South, []string{"s"}},
		{game.West, []string{"w"}},
		{game.NorthEast, []string{"ne"}},
		{game.NorthWest, []string{"nw"}},
		{game.SouthEast, []string{"se"}},
		{game.SouthWest, []string{"sw"}},
		{game.Up, []string{"u"}},
		{game.Down, []string{"d"}},
	}
	for _, d := range directions {
		dir := d.dir
		Define(Definition{
			Name:        string(dir),
			Aliases:     d.aliases,
			Usage:       string(dir),
			Description: "walk " + string(dir),
		}, func(ctx *Context) bool {
			move(ctx, dir)
			return false
		})
	}
}

// move resolves an exit and walks the player through it. All movement funnels
// through game.Translocate so membership and location cannot drift.
func move(ctx *Context, dir game.Direction) {
	room, ok := currentRoom(ctx)
	if !ok {
		return
	}
	exit, ok := room.ResolveExit(dir)
	if !ok {
		warn(ctx, "You cannot go that way.")
		return
	}
	switch exit.State {
	case game.ExitClosed:
		warn(ctx, "The way "+string(dir)+" is shut.")
		return
	case game.ExitLocked:
		warn(ctx, "The way "+string(dir)+" is locked.")
		return
	}

	source := room.ID
	result, err := game.Translocate(ctx.World, &source, exit.To, ctx.Player)
	if err != nil {
		warn(ctx, "That way leads nowhere.")
		return
	}
	if result == game.TranslocateSourceLost {
		ctx.World.Logger().Warn("walk lost its source room")
	}

	ctx.Realm.Router.Publish(game.RoomEvent{
		Room:  source,
		Actor: ctx.Player.Name,
		Text:  fmt.Sprintf("%s leaves %s.", game.HighlightName(ctx.Player.Name), dir),
	})
	ctx.Realm.Router.Publish(game.RoomEvent{
		Room:  exit.To,
		Actor: ctx.Player.Name,
		Text:  game.HighlightName(ctx.Player.Name) + " arrives.",
	})

	if dest, ok := ctx.World.Room(exit.To); ok {
		reply(ctx, "\r\n"+game.DescribeRoom(dest, ctx.Player.Name))
	}
}
