package commands

import (
	"errors"
	"fmt"
	"strings"

	"EmberROM/internal/game"
)

var Take = Define(Definition{
	Name:        "take",
	Aliases:     []string{"get"},
	Usage:       "take <item>",
	Description: "pick something up",
}, func(ctx *Context) bool {
	if ctx.Arg == "" {
		usage(ctx)
		return false
	}
	room, ok := currentRoom(ctx)
	if !ok {
		return false
	}
	item, err := room.TakeItem(ctx.Arg)
	if err != nil {
		warn(ctx, "There is no such thing here.")
		return false
	}
	ctx.Player.AddItem(item)
	reply(ctx, "\r\nYou take "+item.Name+".")
	ctx.Realm.Router.Publish(game.RoomEvent{
		Room:  room.ID,
		Actor: ctx.Player.Name,
		Text:  fmt.Sprintf("%s picks up %s.", game.HighlightName(ctx.Player.Name), item.Name),
	})
	return false
})

var Drop = Define(Definition{
	Name:        "drop",
	Usage:       "drop <item>",
	Description: "put something down",
}, func(ctx *Context) bool {
	if ctx.Arg == "" {
		usage(ctx)
		return false
	}
	item, err := ctx.Player.RemoveItem(ctx.Arg)
	if err != nil {
		warn(ctx, "You are not carrying that.")
		return false
	}
	room, ok := ctx.World.Room(ctx.Player.Location())
	if !ok {
		// Nowhere to put it: the sweep will pick it up later.
		ctx.World.ReportLostItem(item, ctx.Player.Name, game.ErrRoomNotFound)
		warn(ctx, item.Name+" tumbles away into the void.")
		return false
	}
	room.AddItem(item)
	reply(ctx, "\r\nYou drop "+item.Name+".")
	ctx.Realm.Router.Publish(game.RoomEvent{
		Room:  room.ID,
		Actor: ctx.Player.Name,
		Text:  fmt.Sprintf("%s drops %s.", game.HighlightName(ctx.Player.Name), item.Name),
	})
	return false
})

var Give = Define(Definition{
	Name:        "give",
	Usage:       "give <item> to <player>",
	Description: "hand something to another player",
}, func(ctx *Context) bool {
	itemName, targetName, ok := strings.Cut(ctx.Arg, " to ")
	if !ok {
		usage(ctx)
		return false
	}
	target, found := ctx.World.FindPlayer(strings.TrimSpace(targetName))
	if !found {
		warn(ctx, "Nobody by that name is here.")
		return false
	}
	room, ok := currentRoom(ctx)
	if !ok || !room.HasMember(target.Name) {
		warn(ctx, "They are not here with you.")
		return false
	}
	item, err := ctx.Player.RemoveItem(strings.TrimSpace(itemName))
	if err != nil {
		if errors.Is(err, game.ErrItemNotCarried) {
			warn(ctx, "You are not carrying that.")
		}
		return false
	}
	target.AddItem(item)
	target.Send(fmt.Sprintf("\r\n%s gives you %s.", game.HighlightName(ctx.Player.Name), item.Name))
	reply(ctx, "\r\nYou give "+item.Name+" to "+game.HighlightName(target.Name)+".")
	return false
})

var Inventory = Define(Definition{
	Name:        "inventory",
	Aliases:     []string{"inv", "i"},
	Usage:       "inventory",
	Description: "list what you carry",
}, func(ctx *Context) bool {
	items := ctx.Player.Inventory()
	if len(items) == 0 {
		reply(ctx, "\r\nYou carry nothing.")
		return false
	}
	var b strings.Builder
	b.WriteString(game.Style("\r\nYou carry:", game.AnsiBold))
	for _, item := range items {
		b.WriteString("\r\n  " + item.Name)
	}
	reply(ctx, b.String())
	return false
})
