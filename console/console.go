// Package console prints the banner, segment previews and the final
// message to the terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"markestedt/easypaste/segment"
)

// Info describes the running session for the start-up banner
type Info struct {
	File      string
	Delimiter string
	Paste     bool
	Hotkey    string
	Segments  int
}

// Console writes styled output to w
type Console struct {
	w io.Writer

	title    lipgloss.Style
	label    lipgloss.Style
	text     lipgloss.Style
	note     lipgloss.Style
	status   lipgloss.Style
	complete lipgloss.Style
}

// New creates a console whose color support is detected from w
func New(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)

	return &Console{
		w:        w,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AAFF")),
		label:    r.NewStyle().Foreground(lipgloss.Color("#888888")),
		text:     r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		note:     r.NewStyle().Foreground(lipgloss.Color("#FFAA00")).Italic(true),
		status:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
		complete: r.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true),
	}
}

// Banner prints the session settings
func (c *Console) Banner(info Info) {
	fmt.Fprintln(c.w, c.title.Render("EasyPaste is running. Press the hotkey to paste the next segment."))
	c.field("File", info.File)
	c.field("Delimiter", fmt.Sprintf("'%s'", info.Delimiter))
	c.field("Auto-paste", fmt.Sprintf("%t", info.Paste))
	c.field("Hotkey", info.Hotkey)
	c.field("Segments", fmt.Sprintf("%d", info.Segments))
	fmt.Fprintln(c.w, c.status.Render("Press Ctrl+C to exit"))
}

func (c *Console) field(name, value string) {
	fmt.Fprintf(c.w, "%s %s\n", c.label.Render(name+":"), value)
}

// Preview prints the segment that the next trigger will dispatch.
// position is zero-based. Empty segments are announced without a body.
func (c *Console) Preview(seg segment.Segment, position, total int) {
	fmt.Fprintln(c.w, c.label.Render(fmt.Sprintf("Next segment preview (%d/%d):", position+1, total)))

	if strings.TrimSpace(seg.Text) == "" {
		fmt.Fprintln(c.w, c.status.Render("(empty segment, nothing will be copied)"))
	} else {
		fmt.Fprintln(c.w, c.text.Render(strings.TrimRight(seg.Text, "\r\n")))
	}

	if seg.HasNote() {
		fmt.Fprintln(c.w, c.note.Render(fmt.Sprintf("[Note: %s]", seg.Note)))
	}
	fmt.Fprintln(c.w, c.status.Render("---"))
}

// Finished prints the completion message
func (c *Console) Finished(total int) {
	fmt.Fprintln(c.w, c.complete.Render(fmt.Sprintf("All %d segments processed.", total)))
}
