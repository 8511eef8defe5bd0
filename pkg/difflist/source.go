// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package difflist

import "github.com/toasterparty/randomprime-sub001/pkg/errors"

// Source is a read-only run of elements that have not been decoded. Creating
// a cursor or reporting the length must not modify the source.
type Source[T any] interface {
	// Len returns the number of elements.
	Len() int

	// Cursor returns a cursor positioned at the first element.
	Cursor() SourceCursor[T]
}

// SourceCursor is a position within a [Source].
//
// Split and SplitAround consume the cursor. A nil [Source] result means that
// side would have been empty.
type SourceCursor[T any] interface {
	// Next advances to the next element and returns false if there is none.
	// Get must not be called once Next has returned false.
	Next() bool

	// Get decodes the current element.
	Get() T

	// Split splits the source before the current element. Right contains the
	// current element and everything after it. Left is nil if the cursor is
	// at the first element.
	Split() (left, right Source[T])

	// SplitAround splits the source around the current element, returning
	// the elements before it, the element itself, and the elements after it.
	SplitAround() (left Source[T], item T, right Source[T])
}

// Slice is a [Source] over elements that are already decoded.
type Slice[T any] []T

var _ Source[int] = Slice[int]{}

func (s Slice[T]) Len() int { return len(s) }

func (s Slice[T]) Cursor() SourceCursor[T] { return &sliceCursor[T]{s: s} }

type sliceCursor[T any] struct {
	s        Slice[T]
	i        int
	consumed bool
}

func (c *sliceCursor[T]) check() {
	if c.consumed {
		errors.Panic("slice cursor used after it was split")
	}
}

func (c *sliceCursor[T]) Next() bool {
	c.check()
	if c.i >= len(c.s) {
		return false
	}
	c.i++
	return c.i < len(c.s)
}

func (c *sliceCursor[T]) Get() T {
	c.check()
	if c.i >= len(c.s) {
		errors.Panic("slice cursor is past the end")
	}
	return c.s[c.i]
}

// sub returns s[i:j] as a source, or nil if it is empty. The capacity is
// clipped so the halves of a split never share spare capacity.
func (s Slice[T]) sub(i, j int) Source[T] {
	if i >= j {
		return nil
	}
	return s[i:j:j]
}

func (c *sliceCursor[T]) Split() (left, right Source[T]) {
	c.Get()
	c.consumed = true
	return c.s.sub(0, c.i), c.s.sub(c.i, len(c.s))
}

func (c *sliceCursor[T]) SplitAround() (left Source[T], item T, right Source[T]) {
	item = c.Get()
	c.consumed = true
	return c.s.sub(0, c.i), item, c.s.sub(c.i+1, len(c.s))
}
