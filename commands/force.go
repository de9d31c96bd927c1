package commands

import (
	"strings"

	"EmberROM/internal/game"
)

var Force = Define(Definition{
	Name:        "force",
	Usage:       "force [-] <player|all> <message>",
	Description: "compel a player, or everyone, with an administrative message",
	Admin:       true,
}, func(ctx *Context) bool {
	if !requireAdmin(ctx) {
		return false
	}
	arg := ctx.Arg
	anonymous := false
	if strings.HasPrefix(arg, "- ") || arg == "-" {
		anonymous = true
		arg = strings.TrimSpace(strings.TrimPrefix(arg, "-"))
	}
	targetName, msg, _ := strings.Cut(arg, " ")
	msg = strings.TrimSpace(msg)
	if targetName == "" || msg == "" {
		usage(ctx)
		return false
	}

	source := game.ForceSource{Admin: ctx.Player.Name, Anonymous: anonymous}
	if strings.EqualFold(targetName, "all") {
		ctx.Realm.Router.Publish(game.Force{Text: msg, Source: source})
		reply(ctx, "\r\nThe compulsion goes out to everyone.")
		return false
	}
	target, ok := ctx.World.FindPlayer(targetName)
	if !ok {
		warn(ctx, "Nobody by that name is here.")
		return false
	}
	ctx.Realm.Router.Publish(game.Force{Text: msg, Target: target.Name, Source: source})
	reply(ctx, "\r\n"+game.HighlightName(target.Name)+" feels your will.")
	return false
})
