package commands

import (
	"fmt"

	"EmberROM/internal/game"
)

var Shout = Define(Definition{
	Name:        "shout",
	Aliases:     []string{"yell"},
	Usage:       "shout <message>",
	Description: "shout to nearby rooms",
}, func(ctx *Context) bool {
	msg := ctx.Arg
	if msg == "" {
		warn(ctx, "Shout what?")
		return false
	}
	room, ok := currentRoom(ctx)
	if !ok {
		return false
	}
	ctx.Realm.Router.Publish(game.Shout{Room: room.ID, Text: msg, Sender: ctx.Player.Name})
	reply(ctx, fmt.Sprintf("\r\n%s %s", game.Style("You shout:", game.AnsiBold, game.AnsiYellow), msg))
	return false
})
