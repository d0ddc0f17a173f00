package postprocess

import (
	"context"
	"fmt"
	"log/slog"

	"markestedt/easypaste/config"
)

// Processor is a function that transforms segment text before it is pasted
type Processor func(ctx context.Context, text string) (string, error)

// Pipeline runs a series of processors in sequence
type Pipeline struct {
	processors []Processor
}

// NewPipeline creates a new processing pipeline
func NewPipeline(processors ...Processor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// FromConfig builds the pipeline described by the [postprocess] table
func FromConfig(cfg config.PostprocessConfig) (*Pipeline, error) {
	p := NewPipeline()

	if cfg.Replacements != "" {
		replacements, err := LoadReplacements(cfg.Replacements)
		if err != nil {
			return nil, err
		}
		p.AddProcessor(ReplacementProcessor(replacements))
	}

	switch cfg.LineEndings {
	case "", "keep":
	case "lf":
		p.AddProcessor(LineEndingProcessor("\n"))
	case "crlf":
		p.AddProcessor(LineEndingProcessor("\r\n"))
	default:
		return nil, fmt.Errorf("unknown line_endings mode: %s", cfg.LineEndings)
	}

	if cfg.TrimSpace {
		p.AddProcessor(TrimProcessor())
	}

	return p, nil
}

// Process runs all processors in sequence
func (p *Pipeline) Process(ctx context.Context, text string) (string, error) {
	result := text
	var err error

	for i, proc := range p.processors {
		result, err = proc(ctx, result)
		if err != nil {
			slog.Error("Processor failed", "index", i, "error", err)
			return result, err
		}
	}

	return result, nil
}

// AddProcessor adds a processor to the pipeline
func (p *Pipeline) AddProcessor(proc Processor) {
	p.processors = append(p.processors, proc)
}

// Len returns the number of processors
func (p *Pipeline) Len() int {
	return len(p.processors)
}
