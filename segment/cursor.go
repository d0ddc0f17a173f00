package segment

import "errors"

// ErrDone is returned by Advance once every segment has been dispatched
var ErrDone = errors.New("all segments already dispatched")

// State is the playback state of a Cursor
type State int

const (
	Loaded State = iota
	Done
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Cursor tracks playback progress through a segment sequence.
// The position only moves forward and stops at Len().
type Cursor struct {
	segments []Segment
	pos      int
}

// NewCursor creates a cursor positioned at the first segment
func NewCursor(segments []Segment) *Cursor {
	return &Cursor{segments: segments}
}

// Peek returns the segment at the current position without moving.
// The boolean is false once the cursor is done.
func (c *Cursor) Peek() (Segment, bool) {
	if c.Done() {
		return Segment{}, false
	}
	return c.segments[c.pos], true
}

// Advance returns the segment at the current position and moves past it.
// last reports whether the cursor is done after this call. Calling Advance
// on a done cursor changes nothing and returns ErrDone.
func (c *Cursor) Advance() (seg Segment, last bool, err error) {
	if c.Done() {
		return Segment{}, true, ErrDone
	}

	seg = c.segments[c.pos]
	c.pos++

	return seg, c.Done(), nil
}

// State returns Loaded while segments remain, Done afterwards
func (c *Cursor) State() State {
	if c.Done() {
		return Done
	}
	return Loaded
}

// Done reports whether every segment has been dispatched
func (c *Cursor) Done() bool {
	return c.pos >= len(c.segments)
}

// Position returns the zero-based index of the next segment
func (c *Cursor) Position() int {
	return c.pos
}

// Len returns the number of segments
func (c *Cursor) Len() int {
	return len(c.segments)
}

// Remaining returns how many segments have not been dispatched yet
func (c *Cursor) Remaining() int {
	return len(c.segments) - c.pos
}
