//go:build !windows

package platform

import "github.com/atotto/clipboard"

// systemClipboard delegates to the platform clipboard tools (pbcopy, xclip, wl-copy)
type systemClipboard struct{}

// NewClipboard creates a clipboard backed by github.com/atotto/clipboard
func NewClipboard() Clipboard {
	return &systemClipboard{}
}

func (c *systemClipboard) Set(text string) error {
	return clipboard.WriteAll(text)
}
