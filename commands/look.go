package commands

import "EmberROM/internal/game"

var Look = Define(Definition{
	Name:        "look",
	Aliases:     []string{"l"},
	Usage:       "look",
	Description: "look around",
}, func(ctx *Context) bool {
	room, ok := currentRoom(ctx)
	if !ok {
		return false
	}
	reply(ctx, "\r\n"+game.DescribeRoom(room, ctx.Player.Name))
	return false
})
