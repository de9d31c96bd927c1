package commands

import (
	"fmt"

	"EmberROM/internal/game"
)

var Emote = Define(Definition{
	Name:        "emote",
	Aliases:     []string{"me"},
	Usage:       "emote <action>",
	Description: "perform an action",
}, func(ctx *Context) bool {
	if ctx.Arg == "" {
		warn(ctx, "Emote what?")
		return false
	}
	room, ok := currentRoom(ctx)
	if !ok {
		return false
	}
	text := fmt.Sprintf("%s %s", game.HighlightName(ctx.Player.Name), ctx.Arg)
	ctx.Realm.Router.Publish(game.RoomEvent{Room: room.ID, Text: text, Actor: ctx.Player.Name})
	reply(ctx, "\r\n"+text)
	return false
})
