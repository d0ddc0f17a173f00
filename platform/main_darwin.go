//go:build darwin

package platform

import "golang.design/x/hotkey/mainthread"

// RunMain runs fn with the main thread reserved for hotkey handling
func RunMain(fn func()) {
	mainthread.Init(fn)
}

// TraySupported is false because the hotkey event loop owns the main thread
const TraySupported = false
