// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package difflist

import "github.com/toasterparty/randomprime-sub001/pkg/errors"

// Cursor is a position within a [List]. The position is a segment index plus,
// when that segment is an undecoded run, a cursor within the run. The index
// equals the number of segments when the cursor is at the end.
type Cursor[T any] struct {
	list     *List[T]
	epoch    uint64
	index    int
	inner    SourceCursor[T]
	released bool
}

func (c *Cursor[T]) check() {
	if c.released {
		errors.Panic("diff list cursor used after IntoValue")
	}
	if c.epoch != c.list.epoch {
		errors.Panic("diff list cursor used after it was invalidated")
	}
}

// enter opens a cursor on the segment at the current index if it is an
// undecoded run.
func (c *Cursor[T]) enter() {
	c.inner = nil
	if c.index < len(c.list.segments) && c.list.segments[c.index].isArray() {
		c.inner = c.list.segments[c.index].src.Cursor()
	}
}

// current returns the current segment and verifies it agrees with the inner
// cursor.
func (c *Cursor[T]) current() segment[T] {
	s := c.list.segments[c.index]
	if s.isArray() != (c.inner != nil) {
		errors.Panic("diff list cursor at segment %d: segment is %v but inner cursor present is %v", c.index, s.isArray(), c.inner != nil)
	}
	return s
}

// AtEnd returns true if the cursor is past the last element.
func (c *Cursor[T]) AtEnd() bool {
	c.check()
	return c.index >= len(c.list.segments)
}

// Next advances to the next element. It returns false if the cursor is now
// at the end.
func (c *Cursor[T]) Next() bool {
	c.check()
	if c.index >= len(c.list.segments) {
		return false
	}
	c.current()
	if c.inner != nil && c.inner.Next() {
		return true
	}
	c.index++
	c.enter()
	return c.index < len(c.list.segments)
}

// Peek returns the current element without changing the list. It returns
// false if the cursor is at the end.
func (c *Cursor[T]) Peek() (T, bool) {
	c.check()
	if c.index >= len(c.list.segments) {
		var z T
		return z, false
	}
	s := c.current()
	if c.inner != nil {
		return c.inner.Get(), true
	}
	return *s.item, true
}

// split splits the current run so that the current element starts its own
// run at the current index. It does nothing if the cursor is not inside a
// run.
func (c *Cursor[T]) split() {
	if c.index >= len(c.list.segments) {
		return
	}
	c.current()
	if c.inner == nil {
		return
	}

	left, right := c.inner.Split()
	c.inner = nil
	if right == nil || right.Len() == 0 {
		errors.Panic("split produced an empty right remainder")
	}
	c.list.segments[c.index] = segment[T]{src: right}
	if left == nil {
		return
	}
	if left.Len() == 0 {
		errors.Panic("split produced an empty left remainder")
	}
	c.list.splice(c.index, segment[T]{src: left})
	c.index++
}

// InsertBefore inserts values before the current element, or at the end of
// the list if the cursor is at the end. The cursor is left on the first
// inserted value.
func (c *Cursor[T]) InsertBefore(values ...T) {
	c.check()
	if len(values) == 0 {
		return
	}

	c.split()
	c.list.splice(c.index, items(values)...)
	c.enter()
}

// InsertAfter inserts values at the cursor like [Cursor.InsertBefore] but
// leaves the cursor after them, on the element it was on. Calling
// InsertAfter and then Next for every element therefore visits each original
// element exactly once.
func (c *Cursor[T]) InsertAfter(values ...T) {
	c.check()
	if len(values) == 0 {
		return
	}

	start, before := c.index, len(c.list.segments)
	c.split()
	c.list.splice(c.index, items(values)...)

	// The original element moved right by every segment the split and the
	// splice added
	c.index = start + len(c.list.segments) - before
	c.enter()
}

// Value materializes the current element and returns a pointer to it. If the
// element is inside an undecoded run, the run is split around it. The pointer
// remains valid for the life of the list. Value returns false if the cursor is
// at the end.
func (c *Cursor[T]) Value() (*T, bool) {
	c.check()
	if c.index >= len(c.list.segments) {
		return nil, false
	}
	s := c.current()
	if c.inner == nil {
		return s.item, true
	}

	left, item, right := c.inner.SplitAround()
	c.inner = nil
	box := &item
	c.list.segments[c.index] = segment[T]{item: box}
	if right != nil {
		if right.Len() == 0 {
			errors.Panic("split produced an empty right remainder")
		}
		c.list.splice(c.index+1, segment[T]{src: right})
	}
	if left != nil {
		if left.Len() == 0 {
			errors.Panic("split produced an empty left remainder")
		}
		c.list.splice(c.index, segment[T]{src: left})
		c.index++
	}
	return box, true
}

// IntoValue is [Cursor.Value] but releases the cursor. The cursor must not be
// used afterwards.
func (c *Cursor[T]) IntoValue() (*T, bool) {
	v, ok := c.Value()
	c.released = true
	return v, ok
}
