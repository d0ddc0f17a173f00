//go:build linux

package platform

import "golang.design/x/hotkey"

const permissionHint = "global hotkeys need an X11 session (or XWayland) and a free key combination"

// Mod1 is Alt and Mod4 is Super on standard X11 keymaps
func modifiers(combo KeyCombo) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if combo.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if combo.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if combo.Alt {
		mods = append(mods, hotkey.Mod1)
	}
	if combo.Win {
		mods = append(mods, hotkey.Mod4)
	}
	return mods
}
