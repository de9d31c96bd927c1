package commands

import (
	"fmt"
	"strings"

	"EmberROM/internal/game"
)

var Redit = Define(Definition{
	Name:        "redit",
	Usage:       "redit [room]",
	Description: "edit a room",
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	var room *game.Room
	if arg := strings.TrimSpace(ctx.Arg); arg != "" {
		found, ok := ctx.World.Room(game.RoomID(arg))
		if !ok {
			warn(ctx, "No such room.")
			return false
		}
		room = found
	} else {
		found, ok := currentRoom(ctx)
		if !ok {
			return false
		}
		room = found
	}

	working := room.Snapshot()
	ctx.Player.SetEdit(&game.EditSession{
		Mode: game.EditRoom{ID: room.ID},
		Room: &working,
	})
	ctx.Player.PushState(game.StateEditing{Mode: game.EditRoom{ID: room.ID}})
	reply(ctx, "\r\nEditing room "+string(room.ID)+". Commands: show, title, desc, save, abort, done.")
	return false
})

var reditShow = Define(Definition{
	Name:        "show",
	Usage:       "show",
	Description: "show the working copy",
	Mode:        ModeRoomEditor,
}, func(ctx *Context) bool {
	edit := ctx.Player.Edit()
	if edit == nil || edit.Room == nil {
		return leaveEditor(ctx)
	}
	dirty := ""
	if edit.Dirty {
		dirty = game.Style(" (unsaved)", game.AnsiYellow)
	}
	reply(ctx, fmt.Sprintf("\r\n%s%s\r\n%s",
		game.Style(edit.Room.Title, game.AnsiBold, game.AnsiCyan), dirty,
		edit.Room.Description))
	return false
})

var reditTitle = Define(Definition{
	Name:        "title",
	Usage:       "title <text>",
	Description: "set the room title",
	Mode:        ModeRoomEditor,
}, func(ctx *Context) bool {
	edit := ctx.Player.Edit()
	if edit == nil || edit.Room == nil {
		return leaveEditor(ctx)
	}
	if ctx.Arg == "" {
		usage(ctx)
		return false
	}
	edit.Room.Title = ctx.Arg
	edit.Dirty = true
	reply(ctx, "\r\nTitle set.")
	return false
})

var reditDesc = Define(Definition{
	Name:        "desc",
	Usage:       "desc [+N text | -N | -N..M | = text | text]",
	Description: "edit the room description line by line",
	Mode:        ModeRoomEditor,
}, func(ctx *Context) bool {
	edit := ctx.Player.Edit()
	if edit == nil || edit.Room == nil {
		return leaveEditor(ctx)
	}
	outcome, err := game.EditText(ctx.Arg, edit.Room.Description)
	if err != nil {
		warn(ctx, err.Error())
		return false
	}
	if outcome.Listing != "" {
		reply(ctx, "\r\n"+outcome.Listing)
		return false
	}
	edit.Room.Description = outcome.Text
	if outcome.Dirty {
		edit.Dirty = true
	}
	reply(ctx, "\r\nOk.")
	return false
})

var reditSave = Define(Definition{
	Name:        "save",
	Usage:       "save",
	Description: "apply and persist the working copy",
	Mode:        ModeRoomEditor,
}, func(ctx *Context) bool {
	saveRoomEdit(ctx)
	return false
})

var reditAbort = Define(Definition{
	Name:        "abort",
	Usage:       "abort",
	Description: "discard changes and leave the editor",
	Mode:        ModeRoomEditor,
}, func(ctx *Context) bool {
	reply(ctx, "\r\nChanges discarded.")
	return leaveEditor(ctx)
})

var reditDone = Define(Definition{
	Name:        "done",
	Usage:       "done",
	Description: "save if needed and leave the editor",
	Mode:        ModeRoomEditor,
}, func(ctx *Context) bool {
	if edit := ctx.Player.Edit(); edit != nil && edit.Dirty {
		if !saveRoomEdit(ctx) {
			return false
		}
	}
	return leaveEditor(ctx)
})

// saveRoomEdit applies the working copy to the live room and persists it. The
// room guard is released before the store write.
func saveRoomEdit(ctx *Context) bool {
	edit := ctx.Player.Edit()
	if edit == nil || edit.Room == nil {
		return false
	}
	mode, ok := edit.Mode.(game.EditRoom)
	if !ok {
		return false
	}
	room, found := ctx.World.Room(mode.ID)
	if !found {
		warn(ctx, "The room you were editing no longer exists.")
		return false
	}
	room.ApplyEdit(*edit.Room)
	snap := room.Snapshot()
	if err := ctx.Realm.Store.SaveRoom(game.RoomRecord{
		ID:          snap.ID,
		AreaID:      snap.AreaID,
		Title:       snap.Title,
		Description: snap.Description,
		Exits:       snap.Exits,
	}); err != nil {
		warn(ctx, "The edit could not be persisted.")
		ctx.World.Logger().Error("room save failed")
		return false
	}
	edit.Dirty = false
	ctx.Player.MarkActive()
	reply(ctx, "\r\nRoom saved.")
	return true
}

// leaveEditor pops back to the playing state and clears the edit payload.
func leaveEditor(ctx *Context) bool {
	ctx.Player.SetEdit(nil)
	ctx.Player.PopState()
	reply(ctx, "\r\nYou step out of the editor.")
	return false
}
