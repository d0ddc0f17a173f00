//go:build windows

package platform

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	openClipboard    = user32.NewProc("OpenClipboard")
	closeClipboard   = user32.NewProc("CloseClipboard")
	emptyClipboard   = user32.NewProc("EmptyClipboard")
	setClipboardData = user32.NewProc("SetClipboardData")
	globalAlloc      = kernel32.NewProc("GlobalAlloc")
	globalFree       = kernel32.NewProc("GlobalFree")
	globalLock       = kernel32.NewProc("GlobalLock")
	globalUnlock     = kernel32.NewProc("GlobalUnlock")
)

const (
	cfUnicodeText = 13
	gmemMoveable  = 0x0002

	openAttempts = 10
	openBackoff  = 10 * time.Millisecond
)

// win32Clipboard writes CF_UNICODETEXT through the Win32 clipboard API
type win32Clipboard struct{}

// NewClipboard creates a new Windows clipboard instance
func NewClipboard() Clipboard {
	return &win32Clipboard{}
}

func (c *win32Clipboard) Set(text string) error {
	utf16, err := windows.UTF16FromString(text)
	if err != nil {
		return fmt.Errorf("UTF16 conversion failed: %w", err)
	}

	return withClipboard(func() error {
		emptyClipboard.Call()

		h, _, err := globalAlloc.Call(gmemMoveable, uintptr(len(utf16)*2))
		if h == 0 {
			return fmt.Errorf("GlobalAlloc failed: %w", err)
		}

		p, _, err := globalLock.Call(h)
		if p == 0 {
			globalFree.Call(h)
			return fmt.Errorf("GlobalLock failed: %w", err)
		}
		copy(unsafe.Slice((*uint16)(unsafe.Pointer(p)), len(utf16)), utf16)
		globalUnlock.Call(h)

		// The system owns the handle once SetClipboardData succeeds
		if r, _, err := setClipboardData.Call(cfUnicodeText, h); r == 0 {
			globalFree.Call(h)
			return fmt.Errorf("SetClipboardData failed: %w", err)
		}
		return nil
	})
}

// withClipboard opens the clipboard, retrying while another process holds it
func withClipboard(fn func() error) error {
	opened := false
	for i := 0; i < openAttempts; i++ {
		if r, _, _ := openClipboard.Call(0); r != 0 {
			opened = true
			break
		}
		time.Sleep(openBackoff)
	}
	if !opened {
		return fmt.Errorf("failed to open clipboard after %d attempts", openAttempts)
	}
	defer closeClipboard.Call()

	return fn()
}
