package commands

import (
	"strconv"
	"strings"
	"time"
)

var Set = Define(Definition{
	Name:        "set",
	Usage:       "set autosave <seconds>",
	Description: "adjust a live server setting",
	Admin:       true,
}, func(ctx *Context) bool {
	if !requireAdmin(ctx) {
		return false
	}
	key, value, _ := strings.Cut(ctx.Arg, " ")
	value = strings.TrimSpace(value)
	if key != "autosave" || value == "" {
		usage(ctx)
		return false
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 1 {
		warn(ctx, "Give the interval in whole seconds.")
		return false
	}
	if err := ctx.Realm.Settings.SetAutosaveInterval(time.Duration(seconds) * time.Second); err != nil {
		warn(ctx, err.Error())
		return false
	}
	reply(ctx, "\r\nAutosave interval set to "+value+"s.")
	return false
})
