//go:build darwin || linux

package platform

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

const defaultPasteDelay = 100 * time.Millisecond

// keybdPaster sends the paste shortcut through a virtual keyboard
type keybdPaster struct {
	once sync.Once
	kb   keybd_event.KeyBonding
	err  error
}

// NewPaster creates a paster backed by github.com/micmonay/keybd_event
func NewPaster() Paster {
	return &keybdPaster{}
}

// Paste simulates Cmd+V on macOS and Ctrl+V elsewhere
func (p *keybdPaster) Paste() error {
	p.once.Do(func() {
		p.kb, p.err = keybd_event.NewKeyBonding()
		if p.err == nil && runtime.GOOS == "linux" {
			// uinput devices are ignored until the compositor has picked them up
			time.Sleep(2 * time.Second)
		}
	})
	if p.err != nil {
		return fmt.Errorf("failed to create virtual keyboard: %w", p.err)
	}

	p.kb.Clear()
	p.kb.SetKeys(keybd_event.VK_V)
	if runtime.GOOS == "darwin" {
		p.kb.HasSuper(true)
	} else {
		p.kb.HasCTRL(true)
	}

	return p.kb.Launching()
}
