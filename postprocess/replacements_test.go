package postprocess

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReplacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replacements.txt")
	os.WriteFile(path, []byte(`
# demo placeholders
{{host}} -> db.internal
{{user}}->admin
{{sep}} -> a\nb
`), 0644)

	replacements, err := LoadReplacements(path)
	if err != nil {
		t.Fatalf("LoadReplacements failed: %v", err)
	}

	want := []Replacement{
		{From: "{{host}}", To: "db.internal"},
		{From: "{{user}}", To: "admin"},
		{From: "{{sep}}", To: "a\nb"},
	}
	if len(replacements) != len(want) {
		t.Fatalf("got %d replacements, want %d", len(replacements), len(want))
	}
	for i := range want {
		if replacements[i] != want[i] {
			t.Errorf("replacement %d = %+v, want %+v", i, replacements[i], want[i])
		}
	}

	got, _ := ReplacementProcessor(replacements)(context.Background(), "psql -h {{host}} -U {{user}} {{user}}")
	if got != "psql -h db.internal -U admin admin" {
		t.Errorf("processed text = %q", got)
	}
}

func TestLoadReplacementsInvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replacements.txt")
	os.WriteFile(path, []byte("no arrow here\n"), 0644)

	if _, err := LoadReplacements(path); err == nil {
		t.Error("expected error for a line without '->'")
	}
}

func TestLoadReplacementsMissingFile(t *testing.T) {
	if _, err := LoadReplacements(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
