package platform

import (
	"context"
	"time"
)

// KeyCombo represents a keyboard key combination
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool   // Cmd on macOS, Super on Linux
	Key   string // Lowercase key name, e.g. "b", "f5", "space"
}

// EventType represents the type of hotkey event
type EventType int

const (
	Pressed EventType = iota
	Released
)

// Event represents a hotkey event
type Event struct {
	Type EventType
}

// Hotkey provides global hotkey detection
type Hotkey interface {
	Listen(ctx context.Context, combo KeyCombo) (<-chan Event, error)
}

// Clipboard receives the text of each dispatched segment
type Clipboard interface {
	Set(text string) error
}

// Paster simulates paste operation
type Paster interface {
	Paste() error
}

// DefaultPasteDelay is how long to wait between writing the clipboard and
// sending the paste keystroke when the config does not say otherwise
func DefaultPasteDelay() time.Duration {
	return defaultPasteDelay
}

// PermissionHint returns guidance for hotkey registration failures
func PermissionHint() string {
	return permissionHint
}
