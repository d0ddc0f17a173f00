package postprocess

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"markestedt/easypaste/config"
)

func TestPipelineRunsInOrder(t *testing.T) {
	appendChar := func(c string) Processor {
		return func(ctx context.Context, text string) (string, error) {
			return text + c, nil
		}
	}

	p := NewPipeline(appendChar("a"), appendChar("b"))
	p.AddProcessor(appendChar("c"))

	got, err := p.Process(context.Background(), "")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestPipelineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	called := false

	p := NewPipeline(
		func(ctx context.Context, text string) (string, error) { return text, boom },
		func(ctx context.Context, text string) (string, error) {
			called = true
			return text, nil
		},
	)

	if _, err := p.Process(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if called {
		t.Error("processor after a failure should not run")
	}
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.PostprocessConfig
		in   string
		want string
	}{
		{"keep", config.PostprocessConfig{LineEndings: "keep"}, " a\r\nb\n", " a\r\nb\n"},
		{"empty is keep", config.PostprocessConfig{}, "a\n", "a\n"},
		{"lf", config.PostprocessConfig{LineEndings: "lf"}, "a\r\nb\r\n", "a\nb\n"},
		{"crlf", config.PostprocessConfig{LineEndings: "crlf"}, "a\nb\r\n", "a\r\nb\r\n"},
		{"trim", config.PostprocessConfig{TrimSpace: true}, "\n  echo hi \n", "echo hi"},
		{"crlf and trim", config.PostprocessConfig{TrimSpace: true, LineEndings: "crlf"}, "a\nb\n", "a\r\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromConfig(tt.cfg)
			if err != nil {
				t.Fatalf("FromConfig failed: %v", err)
			}
			got, err := p.Process(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Process failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromConfigUnknownMode(t *testing.T) {
	if _, err := FromConfig(config.PostprocessConfig{LineEndings: "cr"}); err == nil {
		t.Error("expected error for unknown line ending mode")
	}
}

func TestFromConfigWithReplacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replacements.txt")
	os.WriteFile(path, []byte("{{name}} -> world\n"), 0644)

	p, err := FromConfig(config.PostprocessConfig{Replacements: path, TrimSpace: true})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 processors, got %d", p.Len())
	}

	got, _ := p.Process(context.Background(), "hello {{name}}\n")
	if got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
}

func TestFromConfigMissingReplacements(t *testing.T) {
	_, err := FromConfig(config.PostprocessConfig{Replacements: filepath.Join(t.TempDir(), "nope.txt")})
	if err == nil {
		t.Error("expected error for missing replacements file")
	}
}
