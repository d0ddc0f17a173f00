//go:build !windows && !darwin && !linux

package platform

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

const defaultPasteDelay = 100 * time.Millisecond

const permissionHint = "global hotkeys are not supported on " + runtime.GOOS

type unsupportedHotkey struct{}

func NewHotkey() Hotkey {
	return unsupportedHotkey{}
}

func (unsupportedHotkey) Listen(ctx context.Context, combo KeyCombo) (<-chan Event, error) {
	return nil, fmt.Errorf("global hotkeys are not supported on %s", runtime.GOOS)
}

type unsupportedPaster struct{}

func NewPaster() Paster {
	return unsupportedPaster{}
}

func (unsupportedPaster) Paste() error {
	return fmt.Errorf("paste simulation is not supported on %s", runtime.GOOS)
}
