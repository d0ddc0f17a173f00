package systray

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"
)

// Manager owns the tray icon and its Next/Quit menu
type Manager struct {
	iconData []byte
	next     chan struct{}
	quit     chan struct{}

	mu       sync.Mutex
	ready    bool
	tooltip  string
	progress *systray.MenuItem
	quitOnce sync.Once
}

// NewManager creates a new systray manager
func NewManager(iconData []byte) *Manager {
	return &Manager{
		iconData: iconData,
		next:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		tooltip:  "EasyPaste",
	}
}

// Run starts the system tray (blocking call)
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *Manager) Stop() {
	systray.Quit()
}

// Next delivers a value each time the user clicks "Next segment"
func (m *Manager) Next() <-chan struct{} {
	return m.next
}

// Quit is closed when the user clicks Quit
func (m *Manager) Quit() <-chan struct{} {
	return m.quit
}

// SetProgress shows how many segments have been dispatched
func (m *Manager) SetProgress(done, total int) {
	text := fmt.Sprintf("EasyPaste: %d/%d pasted", done, total)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tooltip = text
	if !m.ready {
		return
	}
	systray.SetTooltip(text)
	m.progress.SetTitle(text)
}

func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}
	systray.SetTitle("EasyPaste")

	mProgress := systray.AddMenuItem("", "Segments dispatched so far")
	mProgress.Disable()
	systray.AddSeparator()
	mNext := systray.AddMenuItem("Next segment", "Copy the next segment, same as the hotkey")
	mQuit := systray.AddMenuItem("Quit", "Exit EasyPaste")

	m.mu.Lock()
	m.ready = true
	m.progress = mProgress
	systray.SetTooltip(m.tooltip)
	mProgress.SetTitle(m.tooltip)
	m.mu.Unlock()

	go func() {
		for {
			select {
			case <-mNext.ClickedCh:
				select {
				case m.next <- struct{}{}:
				default:
				}
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				m.quitOnce.Do(func() { close(m.quit) })
				systray.Quit()
				return
			}
		}
	}()
}

func (m *Manager) onExit() {
	slog.Info("System tray exited")
}
