//go:build darwin || linux

package platform

import (
	"context"
	"fmt"
	"log/slog"

	"golang.design/x/hotkey"
)

var keyCodes = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space": hotkey.KeySpace, "enter": hotkey.KeyReturn,
	"esc": hotkey.KeyEscape, "tab": hotkey.KeyTab,
}

// registeredHotkey registers the combination with the OS
type registeredHotkey struct{}

// NewHotkey creates a hotkey listener backed by golang.design/x/hotkey
func NewHotkey() Hotkey {
	return &registeredHotkey{}
}

// Listen registers combo and forwards its key events until ctx ends
func (r *registeredHotkey) Listen(ctx context.Context, combo KeyCombo) (<-chan Event, error) {
	key, ok := keyCodes[combo.Key]
	if !ok {
		return nil, fmt.Errorf("unknown key: %s", combo.Key)
	}

	hk := hotkey.New(modifiers(combo), key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("failed to register hotkey: %w", err)
	}

	events := make(chan Event, 10)

	go func() {
		defer func() {
			if err := hk.Unregister(); err != nil {
				slog.Warn("Failed to unregister hotkey", "error", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case <-hk.Keydown():
				forward(events, Pressed)
			case <-hk.Keyup():
				forward(events, Released)
			}
		}
	}()

	return events, nil
}

func forward(events chan<- Event, t EventType) {
	select {
	case events <- Event{Type: t}:
	default:
	}
}
