package commands

import "EmberROM/internal/game"

const unknownCommand = "\r\nUnrecognized command. Type 'help'."

func reply(ctx *Context, msg string) {
	ctx.Player.Send(game.Ansi(msg))
}

func warn(ctx *Context, msg string) {
	ctx.Player.Send(game.Ansi(game.Style("\r\n"+msg, game.AnsiYellow)))
}

func usage(ctx *Context) {
	warn(ctx, "Usage: "+ctx.Command.Usage)
}

// requireAdmin gates admin verbs. Non-admins get the same response an unknown
// verb would, so the admin command set stays hidden from them.
func requireAdmin(ctx *Context) bool {
	if ctx.Player.Access.IsAdmin() {
		return true
	}
	reply(ctx, unknownCommand)
	return false
}

func requireBuilder(ctx *Context) bool {
	if ctx.Player.Access.IsBuilder() || ctx.Player.Access.IsAdmin() {
		return true
	}
	warn(ctx, "Only builders may do that.")
	return false
}

// currentRoom resolves the player's room, warning on the rare case the
// location no longer exists.
func currentRoom(ctx *Context) (*game.Room, bool) {
	room, ok := ctx.World.Room(ctx.Player.Location())
	if !ok {
		warn(ctx, "You drift in the void. Try 'return'.")
		return nil, false
	}
	return room, true
}
