package commands

import (
	"fmt"
	"strings"
	"time"

	"EmberROM/internal/game"
)

var Who = Define(Definition{
	Name:        "who",
	Usage:       "who",
	Description: "list connected players",
	Mode:        ModeGlobal,
}, func(ctx *Context) bool {
	players := ctx.World.Players()
	var b strings.Builder
	b.WriteString(game.Style(fmt.Sprintf("\r\n%d connected:", len(players)), game.AnsiBold))
	for _, p := range players {
		online := time.Since(p.JoinedAt).Round(time.Second)
		b.WriteString(fmt.Sprintf("\r\n  %s  %-8s %s",
			game.HighlightName(p.Name), p.Access.Level.String(), online))
	}
	reply(ctx, b.String())
	return false
})
