package segment

import (
	"errors"
	"testing"
)

func TestCursorAdvanceInOrder(t *testing.T) {
	segments := []Segment{
		{Text: "a", Note: "first"},
		{Text: "b"},
		{Text: "c", Note: "last"},
	}
	c := NewCursor(segments)

	if c.State() != Loaded {
		t.Fatalf("initial state = %v, want loaded", c.State())
	}

	for i, want := range segments {
		peeked, ok := c.Peek()
		if !ok {
			t.Fatalf("Peek reported done before segment %d", i)
		}
		if peeked != want {
			t.Errorf("Peek %d = %#v, want %#v", i, peeked, want)
		}

		got, last, err := c.Advance()
		if err != nil {
			t.Fatalf("Advance %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Advance %d = %#v, want %#v", i, got, want)
		}
		if wantLast := i == len(segments)-1; last != wantLast {
			t.Errorf("Advance %d last = %v, want %v", i, last, wantLast)
		}
		if c.Position() != i+1 {
			t.Errorf("Position after %d = %d, want %d", i, c.Position(), i+1)
		}
	}

	if c.State() != Done || !c.Done() {
		t.Errorf("expected done state, got %v", c.State())
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", c.Remaining())
	}
}

func TestCursorDoneIsTerminal(t *testing.T) {
	c := NewCursor([]Segment{{Text: "only"}})

	if _, last, err := c.Advance(); err != nil || !last {
		t.Fatalf("first Advance: last=%v err=%v", last, err)
	}

	for i := 0; i < 3; i++ {
		seg, last, err := c.Advance()
		if !errors.Is(err, ErrDone) {
			t.Errorf("Advance on done cursor returned %v, want ErrDone", err)
		}
		if !last || seg != (Segment{}) {
			t.Errorf("Advance on done cursor returned seg=%#v last=%v", seg, last)
		}
	}

	if c.Position() != c.Len() {
		t.Errorf("Position = %d, want %d", c.Position(), c.Len())
	}
	if _, ok := c.Peek(); ok {
		t.Error("Peek on done cursor should report terminal")
	}
}

func TestCursorEmptySequence(t *testing.T) {
	c := NewCursor(nil)

	if !c.Done() {
		t.Fatal("cursor over no segments should be done")
	}
	if _, _, err := c.Advance(); !errors.Is(err, ErrDone) {
		t.Errorf("expected ErrDone, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	if Loaded.String() != "loaded" || Done.String() != "done" {
		t.Errorf("unexpected state names: %s, %s", Loaded, Done)
	}
	if State(42).String() != "unknown" {
		t.Errorf("unexpected name for invalid state: %s", State(42))
	}
}
