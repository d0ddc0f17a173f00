//go:build !darwin

package platform

// RunMain runs fn on the calling goroutine
func RunMain(fn func()) {
	fn()
}

// TraySupported reports whether the tray icon can run next to the hotkey listener
const TraySupported = true
