package postprocess

import (
	"context"
	"strings"
)

// TrimProcessor strips leading and trailing whitespace, which drops the
// newline that usually sits in front of a delimiter line
func TrimProcessor() Processor {
	return func(ctx context.Context, text string) (string, error) {
		return strings.TrimSpace(text), nil
	}
}

// LineEndingProcessor rewrites every line break to eol
func LineEndingProcessor(eol string) Processor {
	return func(ctx context.Context, text string) (string, error) {
		normalized := strings.ReplaceAll(text, "\r\n", "\n")
		if eol == "\n" {
			return normalized, nil
		}
		return strings.ReplaceAll(normalized, "\n", eol), nil
	}
}
