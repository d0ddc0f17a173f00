//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	peekMessage         = user32.NewProc("PeekMessageW")
	getMessage          = user32.NewProc("GetMessageW")
	postThreadMessage   = user32.NewProc("PostThreadMessageW")
	getAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmSyskeydown = 0x0104
	wmQuit       = 0x0012
	pmNoremove   = 0x0000
)

const permissionHint = "SetWindowsHookEx failed; an elevated or UIPI-restricted session can block low-level keyboard hooks, try running EasyPaste at the same integrity level as the target window"

const (
	vkShift = 0x10
	vkCtrl  = 0x11
	vkAlt   = 0x12
	vkLwin  = 0x5B
	vkRwin  = 0x5C
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// hookHotkey watches a low-level keyboard hook for one combination
type hookHotkey struct {
	mu      sync.Mutex
	combo   KeyCombo
	vk      uint32
	pressed bool
	events  chan Event
	hook    uintptr
	thread  uint32 // id of the thread pumping the hook's messages
	stopped chan struct{}
}

// NewHotkey creates a new Windows hotkey listener
func NewHotkey() Hotkey {
	return &hookHotkey{}
}

// Listen installs the keyboard hook and reports combo presses until ctx ends
func (h *hookHotkey) Listen(ctx context.Context, combo KeyCombo) (<-chan Event, error) {
	vk, err := VKCode(combo.Key)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.combo = combo
	h.vk = uint32(vk)
	h.pressed = false
	h.events = make(chan Event, 10)
	h.stopped = make(chan struct{})
	h.mu.Unlock()

	errCh := make(chan error, 1)
	go h.runHook(errCh)

	select {
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		go func() {
			if err := <-errCh; err == nil {
				h.stop()
			}
		}()
		return nil, ctx.Err()
	}

	go func() {
		<-ctx.Done()
		h.stop()
	}()

	return h.events, nil
}

func (h *hookHotkey) runHook(errCh chan<- error) {
	defer close(h.stopped)

	// The hook is bound to the installing thread's message queue
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hookProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			kbInfo := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			h.handleKeyEvent(wParam, kbInfo)
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(hookProc),
		0,
		0,
	)
	if hook == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx failed: %w", err)
		return
	}
	defer unhookWindowsHookEx.Call(hook)

	// PostThreadMessage fails until the thread has a message queue
	var m msg
	peekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmNoremove)

	h.mu.Lock()
	h.hook = hook
	h.thread = windows.GetCurrentThreadId()
	h.mu.Unlock()

	errCh <- nil

	// GetMessage blocks until input arrives; it returns 0 on WM_QUIT and -1 on error
	for {
		r, _, _ := getMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(r) <= 0 {
			break
		}
	}

	h.mu.Lock()
	h.hook = 0
	h.thread = 0
	h.mu.Unlock()
}

// stop ends the message loop, which removes the hook on its own thread
func (h *hookHotkey) stop() {
	h.mu.Lock()
	thread := h.thread
	h.mu.Unlock()
	if thread != 0 {
		postThreadMessage.Call(uintptr(thread), wmQuit, 0, 0)
	}
}

func (h *hookHotkey) handleKeyEvent(wParam uintptr, kbInfo *kbdllhookstruct) {
	if kbInfo.vkCode != h.vk {
		return
	}

	isKeyDown := wParam == wmKeydown || wParam == wmSyskeydown

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case isKeyDown && !h.pressed && h.checkModifiers():
		// Auto-repeat keydowns are swallowed until the key is released
		h.pressed = true
		h.emit(Pressed)
	case !isKeyDown && h.pressed:
		h.pressed = false
		h.emit(Released)
	}
}

func (h *hookHotkey) emit(t EventType) {
	select {
	case h.events <- Event{Type: t}:
	default:
	}
}

func (h *hookHotkey) checkModifiers() bool {
	ctrl := isKeyPressed(vkCtrl)
	shift := isKeyPressed(vkShift)
	alt := isKeyPressed(vkAlt)
	win := isKeyPressed(vkLwin) || isKeyPressed(vkRwin)

	return ctrl == h.combo.Ctrl &&
		shift == h.combo.Shift &&
		alt == h.combo.Alt &&
		win == h.combo.Win
}

func isKeyPressed(vk int) bool {
	r, _, _ := getAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}

// VKCode returns the Windows virtual key code for a key name
func VKCode(key string) (int, error) {
	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= 'a' && c <= 'z':
			return int(c-'a') + 0x41, nil
		case c >= '0' && c <= '9':
			return int(c-'0') + 0x30, nil
		}
	}

	codes := map[string]int{
		"f1": 0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73,
		"f5": 0x74, "f6": 0x75, "f7": 0x76, "f8": 0x77,
		"f9": 0x78, "f10": 0x79, "f11": 0x7A, "f12": 0x7B,
		"space": 0x20, "enter": 0x0D, "esc": 0x1B, "tab": 0x09,
	}

	if code, ok := codes[key]; ok {
		return code, nil
	}

	return 0, fmt.Errorf("unknown key: %s", key)
}
