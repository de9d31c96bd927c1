package commands

import (
	"fmt"

	"EmberROM/internal/game"
)

var Say = Define(Definition{
	Name:        "say",
	Aliases:     []string{"'"},
	Usage:       "say <message>",
	Description: "chat to the room",
	Mode:        ModeGlobal,
}, func(ctx *Context) bool {
	msg := ctx.Arg
	if msg == "" {
		warn(ctx, "Say what?")
		return false
	}
	room, ok := currentRoom(ctx)
	if !ok {
		return false
	}
	ctx.Realm.Router.Publish(game.Say{Room: room.ID, Text: msg, Sender: ctx.Player.Name})
	reply(ctx, fmt.Sprintf("\r\n%s %s", game.Style("You say:", game.AnsiBold, game.AnsiYellow), msg))
	return false
})
