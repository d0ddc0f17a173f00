package segment

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyDelimiter is returned when the delimiter is an empty string
var ErrEmptyDelimiter = errors.New("delimiter must not be empty")

// Segment is one unit of pastable text with an optional display-only note
type Segment struct {
	Text string
	Note string // Empty when the delimiter line carried no note
}

// HasNote reports whether the segment carries a note
func (s Segment) HasNote() bool {
	return s.Note != ""
}

// LoadError describes a failure to build a segment sequence from a file
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load segments: %v", e.Err)
	}
	return fmt.Sprintf("failed to load segments from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the file at path and splits it into segments
func Load(path, delimiter string) ([]Segment, error) {
	if delimiter == "" {
		return nil, &LoadError{Path: path, Err: ErrEmptyDelimiter}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return Parse(string(data), delimiter)
}

// Parse splits content on every literal occurrence of delimiter.
//
// Text after a delimiter up to the end of its line is the note of the
// segment before it; the delimiter, the note and the newline are dropped
// from the pastable text. The result always holds at least one segment.
func Parse(content, delimiter string) ([]Segment, error) {
	if delimiter == "" {
		return nil, &LoadError{Err: ErrEmptyDelimiter}
	}

	var segments []Segment
	rest := content

	for rest != "" {
		idx := strings.Index(rest, delimiter)
		if idx == -1 {
			// No more delimiters, the remainder is the last segment
			segments = append(segments, Segment{Text: rest})
			break
		}

		text := rest[:idx]
		after := rest[idx+len(delimiter):]

		var note string
		if nl := strings.IndexByte(after, '\n'); nl >= 0 {
			note = after[:nl]
			rest = after[nl+1:]
		} else {
			note = after
			rest = ""
		}

		segments = append(segments, Segment{
			Text: text,
			Note: strings.TrimSpace(note),
		})
	}

	if len(segments) == 0 {
		segments = append(segments, Segment{Text: content})
	}

	return segments, nil
}
