package commands

import (
	"fmt"
	"strings"

	"EmberROM/internal/game"
)

var Chat = Define(Definition{
	Name:        "chat",
	Usage:       "chat <channel> <message>",
	Description: "speak on a channel",
	Mode:        ModeGlobal,
}, func(ctx *Context) bool {
	name, msg, _ := strings.Cut(ctx.Arg, " ")
	msg = strings.TrimSpace(msg)
	if name == "" || msg == "" {
		usage(ctx)
		return false
	}
	channel, ok := game.ChannelFromString(name)
	if !ok {
		warn(ctx, "No such channel. Try 'channels'.")
		return false
	}
	if !channel.AllowsListen(ctx.Player.Access) {
		warn(ctx, "That channel is not open to you.")
		return false
	}
	if !ctx.Player.Subscribed(channel) && !channel.AlwaysOn() {
		warn(ctx, "You are tuned out of "+string(channel)+". Use 'channel "+string(channel)+" on'.")
		return false
	}
	ctx.Realm.Router.Publish(game.ChannelMessage{Channel: channel, Text: msg, Sender: ctx.Player.Name})
	reply(ctx, fmt.Sprintf("\r\n%s You: %s",
		game.Style(channel.Prefix(), game.AnsiBold, game.AnsiGreen), msg))
	return false
})

var ChannelToggle = Define(Definition{
	Name:        "channel",
	Usage:       "channel <name> on|off",
	Description: "tune a channel in or out",
	Mode:        ModeGlobal,
}, func(ctx *Context) bool {
	name, setting, _ := strings.Cut(ctx.Arg, " ")
	setting = strings.ToLower(strings.TrimSpace(setting))
	if name == "" || (setting != "on" && setting != "off") {
		usage(ctx)
		return false
	}
	channel, ok := game.ChannelFromString(name)
	if !ok {
		warn(ctx, "No such channel. Try 'channels'.")
		return false
	}
	if !channel.AllowsListen(ctx.Player.Access) {
		warn(ctx, "That channel is not open to you.")
		return false
	}
	if !ctx.Player.SetSubscribed(channel, setting == "on") {
		warn(ctx, "The "+string(channel)+" channel cannot be tuned out.")
		return false
	}
	ctx.Player.MarkActive()
	reply(ctx, "\r\nChannel "+string(channel)+" is now "+setting+".")
	return false
})

var Channels = Define(Definition{
	Name:        "channels",
	Usage:       "channels",
	Description: "list channels and subscriptions",
	Mode:        ModeGlobal,
}, func(ctx *Context) bool {
	var b strings.Builder
	b.WriteString(game.Style("\r\nChannels:", game.AnsiBold))
	for _, channel := range game.AllChannels() {
		if !channel.AllowsListen(ctx.Player.Access) {
			continue
		}
		state := "off"
		switch {
		case channel.AlwaysOn():
			state = "always on"
		case ctx.Player.Subscribed(channel):
			state = "on"
		}
		b.WriteString(fmt.Sprintf("\r\n  %-8s %s", channel, state))
	}
	reply(ctx, b.String())
	return false
})
