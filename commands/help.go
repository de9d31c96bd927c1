package commands

import (
	"errors"
	"fmt"
	"strings"

	"EmberROM/internal/game"
)

var Help = Define(Definition{
	Name:        "help",
	Aliases:     []string{"?"},
	Usage:       "help [topic]",
	Description: "list commands or show a help topic",
	Mode:        ModeGlobal,
}, func(ctx *Context) bool {
	topic := strings.TrimSpace(ctx.Arg)
	if topic == "" {
		listCommands(ctx)
		return false
	}
	entry, err := ctx.Realm.Store.LoadHelp(topic)
	if err != nil {
		if errors.Is(err, game.ErrRecordNotFound) {
			warn(ctx, "No help on that topic.")
		} else {
			warn(ctx, "The archives are unreachable right now.")
			ctx.World.Logger().Error("help lookup failed")
		}
		return false
	}
	reply(ctx, fmt.Sprintf("\r\n%s\r\n%s",
		game.Style(entry.Topic, game.AnsiBold, game.AnsiCyan),
		game.WrapText(entry.Text, 78)))
	return false
})

func listCommands(ctx *Context) {
	var b strings.Builder
	b.WriteString(game.Style("\r\nCommands:", game.AnsiBold))
	for _, cmd := range All() {
		if cmd.Mode == ModeRoomEditor || cmd.Mode == ModeHelpEditor {
			continue
		}
		if cmd.Admin && !ctx.Player.Access.IsAdmin() {
			continue
		}
		b.WriteString(fmt.Sprintf("\r\n  %-24s %s", cmd.Usage, cmd.Description))
	}
	b.WriteString("\r\nUse 'help <topic>' for the lore archives.")
	reply(ctx, b.String())
}
