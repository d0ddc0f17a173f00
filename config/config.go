package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const DefaultDelimiter = "%%%"

type Config struct {
	Delimiter       string   `toml:"delimiter"`
	FilePath        string   `toml:"file_path"`
	HotkeyModifiers []string `toml:"hotkey_modifiers"`
	HotkeyKey       string   `toml:"hotkey_key"`
	Paste           bool     `toml:"paste"`
	PasteDelayMs    int      `toml:"paste_delay_ms"`

	Postprocess PostprocessConfig `toml:"postprocess"`
	History     HistoryConfig     `toml:"history"`
	Tray        TrayConfig        `toml:"tray"`
}

type PostprocessConfig struct {
	Replacements string `toml:"replacements"` // Path to a "from -> to" file, optional
	TrimSpace    bool   `toml:"trim_space"`
	LineEndings  string `toml:"line_endings"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type TrayConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default configuration
func Default() *Config {
	return &Config{
		Delimiter:       DefaultDelimiter,
		FilePath:        "input.txt",
		HotkeyModifiers: []string{"CTRL", "SHIFT"},
		HotkeyKey:       "B",
		Paste:           true,
		PasteDelayMs:    0,
		Postprocess: PostprocessConfig{
			TrimSpace:   false,
			LineEndings: "keep",
		},
	}
}

// Dir returns the per-user configuration directory
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "easypaste"), nil
}

// ConfigPath returns the path to the default configuration file
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file at path.
// An empty path falls back to the default location, and to built-in
// defaults when no file exists there. The returned string is the file
// that was read, or empty when none was.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := ConfigPath()
		if err != nil {
			return cfg, "", nil
		}
		if _, err := os.Stat(defaultPath); errors.Is(err, os.ErrNotExist) {
			return cfg, "", nil
		}
		path = defaultPath
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	return cfg, path, nil
}

// Save writes the configuration to the TOML file at path
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Validate checks the configuration for fatal mistakes
func (c *Config) Validate() error {
	if c.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	if c.FilePath == "" {
		return fmt.Errorf("no input file given: use --file or set 'file_path'")
	}
	if c.PasteDelayMs < 0 {
		return fmt.Errorf("paste_delay_ms must not be negative: %d", c.PasteDelayMs)
	}
	switch c.Postprocess.LineEndings {
	case "", "keep", "lf", "crlf":
	default:
		return fmt.Errorf("unknown line_endings mode: %s", c.Postprocess.LineEndings)
	}
	if _, err := c.Hotkey(); err != nil {
		return fmt.Errorf("invalid hotkey: %w", err)
	}
	return nil
}

// Hotkey parses the configured modifiers and key
func (c *Config) Hotkey() (KeyCombo, error) {
	return ParseHotkey(c.HotkeyModifiers, c.HotkeyKey)
}

// PasteDelay returns the configured paste delay, or fallback when unset
func (c *Config) PasteDelay(fallback time.Duration) time.Duration {
	if c.PasteDelayMs <= 0 {
		return fallback
	}
	return time.Duration(c.PasteDelayMs) * time.Millisecond
}

// KeyCombo represents a parsed keyboard combination
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   string
}

// String renders the combo like "ctrl+shift+b"
func (kc KeyCombo) String() string {
	var parts []string
	if kc.Ctrl {
		parts = append(parts, "ctrl")
	}
	if kc.Shift {
		parts = append(parts, "shift")
	}
	if kc.Alt {
		parts = append(parts, "alt")
	}
	if kc.Win {
		parts = append(parts, "win")
	}
	parts = append(parts, kc.Key)
	return strings.Join(parts, "+")
}

// keyAliases maps accepted key names to their canonical form
var keyAliases = map[string]string{
	"return": "enter",
	"escape": "esc",
}

// ValidKey reports whether name is a supported hotkey key
func ValidKey(name string) bool {
	if len(name) == 1 {
		c := name[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	switch name {
	case "space", "enter", "tab", "esc",
		"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12":
		return true
	}
	return false
}

// ParseHotkey parses modifier names like ["CTRL", "SHIFT"] and a key
// like "B" into a KeyCombo. Names are case-insensitive.
func ParseHotkey(modifiers []string, key string) (KeyCombo, error) {
	var kc KeyCombo

	for _, mod := range modifiers {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "ctrl", "control":
			kc.Ctrl = true
		case "shift":
			kc.Shift = true
		case "alt", "option":
			kc.Alt = true
		case "cmd", "win", "windows", "meta", "super":
			kc.Win = true
		default:
			return kc, fmt.Errorf("unknown modifier: %s", mod)
		}
	}

	if !kc.Ctrl && !kc.Shift && !kc.Alt && !kc.Win {
		return kc, fmt.Errorf("at least one modifier is required")
	}

	name := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[name]; ok {
		name = alias
	}
	if name == "" {
		return kc, fmt.Errorf("no key specified")
	}
	if !ValidKey(name) {
		return kc, fmt.Errorf("unsupported key: %s", key)
	}
	kc.Key = name

	return kc, nil
}
