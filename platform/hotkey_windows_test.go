//go:build windows

package platform

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestHookHotkeyStopsOnCancel(t *testing.T) {
	h := NewHotkey().(*hookHotkey)

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := h.Listen(ctx, KeyCombo{Ctrl: true, Shift: true, Key: "b"}); err != nil {
		t.Skipf("keyboard hook unavailable: %v", err)
	}

	h.mu.Lock()
	thread := h.thread
	h.mu.Unlock()
	if thread == 0 {
		t.Fatal("message loop thread not recorded")
	}

	cancel()

	select {
	case <-h.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("message loop did not exit after cancel")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hook != 0 || h.thread != 0 {
		t.Errorf("hook state not cleared: hook=%d thread=%d", h.hook, h.thread)
	}
}

func TestHookHotkeyCancelledBeforeListen(t *testing.T) {
	h := NewHotkey().(*hookHotkey)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either the hook came up first or ctx won the race; both must leave no loop running
	if _, err := h.Listen(ctx, KeyCombo{Ctrl: true, Key: "b"}); err == nil {
		t.Log("hook installed before cancellation was observed")
	}

	select {
	case <-h.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("message loop still running after cancelled Listen")
	}
}

func TestVKCode(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"a", 0x41},
		{"z", 0x5A},
		{"0", 0x30},
		{"f12", 0x7B},
		{"space", 0x20},
		{"enter", 0x0D},
	}

	for _, tt := range tests {
		got, err := VKCode(tt.key)
		if err != nil {
			t.Errorf("VKCode(%q) error: %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("VKCode(%q) = %#x, want %#x", tt.key, got, tt.want)
		}
	}

	if _, err := VKCode("pause"); err == nil {
		t.Error("VKCode(\"pause\") should fail")
	}
}

func TestPermissionHintNamesHookFailure(t *testing.T) {
	hint := PermissionHint()
	if !strings.Contains(hint, "SetWindowsHookEx") {
		t.Errorf("hint should name the hook call: %q", hint)
	}
	if strings.Contains(hint, "already own") {
		t.Errorf("hint blames a hotkey conflict, which a keyboard hook cannot have: %q", hint)
	}
}
