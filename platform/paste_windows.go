//go:build windows

package platform

import (
	"fmt"
	"time"
	"unsafe"
)

var (
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard  = 1
	keyeventfKeyup = 0x0002
	mapvkVkToVsc   = 0
	vkControl      = 0x11
	vkV            = 0x56
)

// Windows targets need time to notice the new clipboard owner
const defaultPasteDelay = 2000 * time.Millisecond

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // Padding to match C struct size
}

// sendInputPaster sends Ctrl+V through SendInput
type sendInputPaster struct{}

// NewPaster creates a new Windows paster instance
func NewPaster() Paster {
	return &sendInputPaster{}
}

// Paste simulates Ctrl+V with scan codes so elevated windows accept it
func (p *sendInputPaster) Paste() error {
	ctrlScan, _, _ := mapVirtualKeyW.Call(vkControl, mapvkVkToVsc)
	vScan, _, _ := mapVirtualKeyW.Call(vkV, mapvkVkToVsc)

	key := func(vk, scan uintptr, flags uint32) input {
		return input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wVk:     uint16(vk),
				wScan:   uint16(scan),
				dwFlags: flags,
			},
		}
	}

	inputs := []input{
		key(vkControl, ctrlScan, 0),
		key(vkV, vScan, 0),
		key(vkV, vScan, keyeventfKeyup),
		key(vkControl, ctrlScan, keyeventfKeyup),
	}

	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret != uintptr(len(inputs)) {
		return fmt.Errorf("SendInput injected %d of %d events: %w", ret, len(inputs), err)
	}

	time.Sleep(20 * time.Millisecond)
	return nil
}
