package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"markestedt/easypaste/config"
	"markestedt/easypaste/storage"
)

func parseFlags(t *testing.T, args ...string) (*cobra.Command, options) {
	t.Helper()

	var opts options
	cmd := &cobra.Command{Use: "easypaste"}
	bindFlags(cmd, &opts)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	return cmd, opts
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
delimiter = "###"
file_path = "from-config.txt"
paste = true
`)

	cmd, opts := parseFlags(t, "-c", path, "-f", "from-flag.txt", "-d", "@@", "--no-paste")

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.FilePath != "from-flag.txt" || cfg.Delimiter != "@@" || cfg.Paste {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestLoadConfigKeepsFileValuesWithoutFlags(t *testing.T) {
	path := writeConfig(t, `
delimiter = "###"
file_path = "from-config.txt"
paste = false
`)

	cmd, opts := parseFlags(t, "--config", path)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Delimiter != "###" || cfg.FilePath != "from-config.txt" || cfg.Paste {
		t.Errorf("config values overridden by flag defaults: %+v", cfg)
	}
}

func TestLoadConfigRejectsEmptyDelimiter(t *testing.T) {
	path := writeConfig(t, `file_path = "in.txt"`)
	cmd, opts := parseFlags(t, "-c", path, "-d", "")

	if _, err := loadConfig(cmd, opts); err == nil || !strings.Contains(err.Error(), "delimiter") {
		t.Errorf("expected delimiter error, got %v", err)
	}
}

func TestInitConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "easypaste.toml")

	cmd := newInitConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init-config failed: %v", err)
	}

	cfg, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Delimiter != config.DefaultDelimiter {
		t.Errorf("unexpected delimiter %q", cfg.Delimiter)
	}

	cmd = newInitConfigCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err == nil {
		t.Error("expected refusal to overwrite without --force")
	}
}

func TestHistoryCommandDoesNotCreateDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	path := writeConfig(t, "[history]\nenabled = false\ndir = '"+dir+"'\n")

	cmd := newHistoryCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("history failed: %v", err)
	}

	if !strings.Contains(out.String(), "No pastes recorded yet") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("history directory was created: %v", err)
	}
}

func TestHistoryCommandReadsExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := db.SaveEntry(&storage.Entry{
		SessionID: "s1", FilePath: "in.txt", Position: 1, Total: 2,
		Text: "hello", CharacterCount: 5, Pasted: true, Success: true,
	}); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	db.Close()

	path := writeConfig(t, "[history]\ndir = '"+dir+"'\n")

	cmd := newHistoryCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("history failed: %v", err)
	}

	if !strings.Contains(out.String(), "1 pastes in 1 sessions") || !strings.Contains(out.String(), "hello") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
