package bumpalloc

import "testing"

func TestCursorAlloc(t *testing.T) {
	c := NewCursor(3)

	if got := c.Alloc(); got != 0 {
		t.Errorf("first Alloc = %d, want 0", got)
	}
	if got := c.Alloc(); got != 1 {
		t.Errorf("second Alloc = %d, want 1", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if c.Cap() != 3 {
		t.Errorf("Cap = %d, want 3", c.Cap())
	}
}
