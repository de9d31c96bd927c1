package commands

import (
	"fmt"
	"strings"

	"EmberROM/internal/game"
)

var Tell = Define(Definition{
	Name:        "tell",
	Aliases:     []string{"whisper"},
	Usage:       "tell <player> <message>",
	Description: "send a private message",
	Mode:        ModeGlobal,
}, func(ctx *Context) bool {
	name, msg, _ := strings.Cut(ctx.Arg, " ")
	msg = strings.TrimSpace(msg)
	if name == "" || msg == "" {
		usage(ctx)
		return false
	}
	target, ok := ctx.World.FindPlayer(name)
	if !ok {
		warn(ctx, "Nobody by that name is here.")
		return false
	}
	if target.Name == ctx.Player.Name {
		warn(ctx, "Talking to yourself again?")
		return false
	}
	ctx.Realm.Router.Publish(game.Tell{Target: target.Name, Text: msg, Sender: ctx.Player.Name})
	reply(ctx, fmt.Sprintf("\r\nYou tell %s: %s", game.HighlightName(target.Name), msg))
	return false
})
