// Package bumpalloc provides a fixed-capacity bump cursor for backing
// slice-based arenas: callers pre-size a slice to the cursor's capacity and
// use the index Alloc returns as a stable reference into it, rather than a
// pointer that a slice grow could invalidate.
package bumpalloc

import assert "github.com/arl/assertgo"

// Cursor hands out sequential indices into a pre-sized arena, bumping a
// watermark rather than reusing freed slots — there is no Free. It mirrors
// the pointer-bumping behaviour of a C-style bump allocator without needing
// unsafe.Pointer or reflection to stay type-agnostic.
type Cursor struct {
	next int
	cap  int
}

// NewCursor returns a Cursor over an arena of the given capacity.
func NewCursor(capacity int) *Cursor {
	return &Cursor{cap: capacity}
}

// Alloc reserves and returns the next index. Exceeding the arena's capacity
// is a precondition violation: the caller under-reserved, which in a debug
// build panics via assertgo and otherwise returns an out-of-range index the
// caller will fault on.
func (c *Cursor) Alloc() int {
	assert.True(c.next < c.cap, "bumpalloc: arena of capacity %d exhausted", c.cap)
	idx := c.next
	c.next++
	return idx
}

// Len reports how many indices have been handed out so far.
func (c *Cursor) Len() int { return c.next }

// Cap reports the arena's total capacity.
func (c *Cursor) Cap() int { return c.cap }
