//go:build darwin

package platform

import "golang.design/x/hotkey"

const permissionHint = "grant this terminal Accessibility access in System Settings > Privacy & Security"

func modifiers(combo KeyCombo) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if combo.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if combo.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if combo.Alt {
		mods = append(mods, hotkey.ModOption)
	}
	if combo.Win {
		mods = append(mods, hotkey.ModCmd)
	}
	return mods
}
