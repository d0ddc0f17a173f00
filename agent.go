package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"markestedt/easypaste/config"
	"markestedt/easypaste/console"
	"markestedt/easypaste/platform"
	"markestedt/easypaste/postprocess"
	"markestedt/easypaste/segment"
	"markestedt/easypaste/storage"
	"markestedt/easypaste/systray"
)

// Agent coordinates hotkey detection and segment dispatch. It owns the
// cursor; every trigger is handled on the goroutine running Run.
type Agent struct {
	cfg        *config.Config
	cursor     *segment.Cursor
	hotkey     platform.Hotkey
	clipboard  platform.Clipboard
	paster     platform.Paster
	pasteDelay time.Duration
	pipeline   *postprocess.Pipeline
	console    *console.Console
	history    *storage.DB      // nil when history is disabled
	tray       *systray.Manager // nil when the tray is disabled
	sessionID  string
}

// NewAgent loads the segment file and creates a new agent instance
func NewAgent(cfg *config.Config) (*Agent, error) {
	segments, err := segment.Load(cfg.FilePath, cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	pipeline, err := postprocess.FromConfig(cfg.Postprocess)
	if err != nil {
		return nil, fmt.Errorf("failed to create postprocess pipeline: %w", err)
	}

	a := &Agent{
		cfg:        cfg,
		cursor:     segment.NewCursor(segments),
		hotkey:     platform.NewHotkey(),
		clipboard:  platform.NewClipboard(),
		paster:     platform.NewPaster(),
		pasteDelay: cfg.PasteDelay(platform.DefaultPasteDelay()),
		pipeline:   pipeline,
		console:    console.New(os.Stdout),
		sessionID:  uuid.NewString(),
	}

	if cfg.History.Enabled {
		dir, err := historyDir(cfg)
		if err != nil {
			return nil, err
		}
		db, err := storage.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		a.history = db
	}

	slog.Info("Segments loaded", "file", cfg.FilePath, "count", len(segments))

	return a, nil
}

// historyDir returns the configured history directory or the config dir
func historyDir(cfg *config.Config) (string, error) {
	if cfg.History.Dir != "" {
		return cfg.History.Dir, nil
	}
	return config.Dir()
}

// AttachTray lets tray clicks trigger the same cycle as the hotkey
func (a *Agent) AttachTray(tray *systray.Manager) {
	a.tray = tray
	tray.SetProgress(a.cursor.Position(), a.cursor.Len())
}

// Close releases the history database
func (a *Agent) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}

// Run starts the agent's main event loop. It returns nil once every
// segment has been dispatched or ctx is cancelled.
func (a *Agent) Run(ctx context.Context) error {
	combo, err := a.cfg.Hotkey()
	if err != nil {
		return fmt.Errorf("failed to parse hotkey: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := a.hotkey.Listen(ctx, platform.KeyCombo{
		Ctrl:  combo.Ctrl,
		Shift: combo.Shift,
		Alt:   combo.Alt,
		Win:   combo.Win,
		Key:   combo.Key,
	})
	if err != nil {
		return fmt.Errorf("failed to register hotkey %s: %w (%s)", combo, err, platform.PermissionHint())
	}

	slog.Info("EasyPaste started", "hotkey", combo.String(), "session", a.sessionID)

	a.console.Banner(console.Info{
		File:      a.cfg.FilePath,
		Delimiter: a.cfg.Delimiter,
		Paste:     a.cfg.Paste,
		Hotkey:    combo.String(),
		Segments:  a.cursor.Len(),
	})
	a.preview()

	// Main event loop
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-a.trayQuit():
			return nil

		case <-a.trayNext():
			if a.step(ctx) {
				return nil
			}

		case evt, ok := <-events:
			if !ok {
				return errors.New("hotkey listener stopped")
			}
			if evt.Type != platform.Pressed {
				continue
			}
			slog.Info("Hotkey triggered")
			if a.step(ctx) {
				return nil
			}
		}
	}
}

// step runs one advance-and-dispatch cycle and reports whether the
// cursor is done afterwards
func (a *Agent) step(ctx context.Context) bool {
	seg, last, err := a.cursor.Advance()
	if errors.Is(err, segment.ErrDone) {
		return true
	}

	position := a.cursor.Position()
	entry := a.dispatch(ctx, seg)
	entry.Position = position
	a.record(entry)

	if a.tray != nil {
		a.tray.SetProgress(position, a.cursor.Len())
	}

	if last {
		slog.Info("All segments processed. Exiting...")
		a.console.Finished(a.cursor.Len())
		return true
	}

	a.preview()
	return false
}

// dispatch copies the segment text to the clipboard and pastes it.
// The note is never part of what reaches the clipboard.
func (a *Agent) dispatch(ctx context.Context, seg segment.Segment) *storage.Entry {
	entry := &storage.Entry{
		SessionID: a.sessionID,
		FilePath:  a.cfg.FilePath,
		Total:     a.cursor.Len(),
		Note:      seg.Note,
		Success:   true,
	}

	text, err := a.pipeline.Process(ctx, seg.Text)
	if err != nil {
		slog.Error("Failed to process segment", "error", err)
		return failed(entry, err)
	}
	entry.Text = text
	entry.CharacterCount = len([]rune(text))

	if text == "" {
		slog.Info("Skipping empty segment")
		return entry
	}

	if err := a.clipboard.Set(text); err != nil {
		slog.Error("Failed to set clipboard", "error", err)
		return failed(entry, err)
	}
	slog.Info("Set clipboard", "text", truncate(text, 50))

	if !a.cfg.Paste {
		return entry
	}

	if err := a.pasteAfterDelay(ctx); err != nil {
		slog.Error("Failed to paste", "error", err)
		return failed(entry, err)
	}
	entry.Pasted = true
	slog.Info("Pasted clipboard contents")

	return entry
}

// pasteAfterDelay waits for the clipboard to settle, then sends the paste keystroke
func (a *Agent) pasteAfterDelay(ctx context.Context) error {
	if a.pasteDelay > 0 {
		timer := time.NewTimer(a.pasteDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return a.paster.Paste()
}

func (a *Agent) record(entry *storage.Entry) {
	if a.history == nil {
		return
	}
	if err := a.history.SaveEntry(entry); err != nil {
		slog.Warn("Failed to record paste", "error", err)
	}
}

func (a *Agent) preview() {
	if seg, ok := a.cursor.Peek(); ok {
		a.console.Preview(seg, a.cursor.Position(), a.cursor.Len())
	}
}

func (a *Agent) trayNext() <-chan struct{} {
	if a.tray == nil {
		return nil
	}
	return a.tray.Next()
}

func (a *Agent) trayQuit() <-chan struct{} {
	if a.tray == nil {
		return nil
	}
	return a.tray.Quit()
}

func failed(entry *storage.Entry, err error) *storage.Entry {
	entry.Success = false
	entry.ErrorMessage = err.Error()
	return entry
}

// truncate shortens text for log lines
func truncate(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + "..."
}
