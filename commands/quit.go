package commands

import "EmberROM/internal/game"

var Quit = Define(Definition{
	Name:        "quit",
	Aliases:     []string{"q"},
	Usage:       "quit",
	Description: "disconnect",
	Mode:        ModeGlobal,
}, func(ctx *Context) bool {
	ctx.Player.ResetState(game.StateLoggingOut{})
	return true
})
