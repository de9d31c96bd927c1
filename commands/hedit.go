package commands

import (
	"errors"
	"strings"

	"EmberROM/internal/game"
)

var Hedit = Define(Definition{
	Name:        "hedit",
	Usage:       "hedit <topic>",
	Description: "edit a help topic",
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	topic := game.NormalizeTopic(ctx.Arg)
	if topic == "" {
		usage(ctx)
		return false
	}
	entry, err := ctx.Realm.Store.LoadHelp(topic)
	if err != nil {
		if !errors.Is(err, game.ErrRecordNotFound) {
			warn(ctx, "The archives are unreachable right now.")
			return false
		}
		entry = game.HelpEntry{Topic: topic}
	}
	ctx.Player.SetEdit(&game.EditSession{
		Mode: game.EditHelp{Topic: topic},
		Help: &entry,
	})
	ctx.Player.PushState(game.StateEditing{Mode: game.EditHelp{Topic: topic}})
	reply(ctx, "\r\nEditing help '"+topic+"'. Commands: show, text, save, abort, done.")
	return false
})

var heditShow = Define(Definition{
	Name:        "show",
	Usage:       "show",
	Description: "show the working copy",
	Mode:        ModeHelpEditor,
}, func(ctx *Context) bool {
	edit := ctx.Player.Edit()
	if edit == nil || edit.Help == nil {
		return leaveEditor(ctx)
	}
	dirty := ""
	if edit.Dirty {
		dirty = game.Style(" (unsaved)", game.AnsiYellow)
	}
	reply(ctx, "\r\n"+game.Style(edit.Help.Topic, game.AnsiBold, game.AnsiCyan)+dirty+"\r\n"+edit.Help.Text)
	return false
})

var heditText = Define(Definition{
	Name:        "text",
	Usage:       "text [+N text | -N | -N..M | = text | text]",
	Description: "edit the topic body line by line",
	Mode:        ModeHelpEditor,
}, func(ctx *Context) bool {
	edit := ctx.Player.Edit()
	if edit == nil || edit.Help == nil {
		return leaveEditor(ctx)
	}
	outcome, err := game.EditText(ctx.Arg, edit.Help.Text)
	if err != nil {
		warn(ctx, err.Error())
		return false
	}
	if outcome.Listing != "" {
		reply(ctx, "\r\n"+outcome.Listing)
		return false
	}
	edit.Help.Text = outcome.Text
	if outcome.Dirty {
		edit.Dirty = true
	}
	reply(ctx, "\r\nOk.")
	return false
})

var heditSave = Define(Definition{
	Name:        "save",
	Usage:       "save",
	Description: "persist the topic",
	Mode:        ModeHelpEditor,
}, func(ctx *Context) bool {
	saveHelpEdit(ctx)
	return false
})

var heditAbort = Define(Definition{
	Name:        "abort",
	Usage:       "abort",
	Description: "discard changes and leave the editor",
	Mode:        ModeHelpEditor,
}, func(ctx *Context) bool {
	reply(ctx, "\r\nChanges discarded.")
	return leaveEditor(ctx)
})

var heditDone = Define(Definition{
	Name:        "done",
	Usage:       "done",
	Description: "save if needed and leave the editor",
	Mode:        ModeHelpEditor,
}, func(ctx *Context) bool {
	if edit := ctx.Player.Edit(); edit != nil && edit.Dirty {
		if !saveHelpEdit(ctx) {
			return false
		}
	}
	return leaveEditor(ctx)
})

func saveHelpEdit(ctx *Context) bool {
	edit := ctx.Player.Edit()
	if edit == nil || edit.Help == nil {
		return false
	}
	entry := *edit.Help
	entry.Text = strings.TrimRight(entry.Text, "\n")
	if err := ctx.Realm.Store.SaveHelp(entry); err != nil {
		warn(ctx, "The topic could not be persisted.")
		ctx.World.Logger().Error("help save failed")
		return false
	}
	edit.Dirty = false
	ctx.Player.MarkActive()
	reply(ctx, "\r\nHelp topic saved.")
	return true
}
