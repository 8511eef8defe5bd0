// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package difflist implements a sequence that is decoded lazily and can be
// edited in place.
//
// A [List] starts out as a single undecoded [Source]. Inserting elements or
// editing an element splits the source around the position, so untouched
// elements are never decoded and are written back byte for byte.
package difflist

// SegmentKind distinguishes undecoded runs from materialized elements.
type SegmentKind int

const (
	// ArraySegment is a run of elements that have not been decoded.
	ArraySegment SegmentKind = iota

	// ItemSegment is a single decoded element.
	ItemSegment
)

func (k SegmentKind) String() string {
	switch k {
	case ArraySegment:
		return "array"
	case ItemSegment:
		return "item"
	default:
		return "unknown"
	}
}

// SegmentInfo describes one segment of a list.
type SegmentInfo struct {
	Kind SegmentKind
	Len  int
}

// segment is either an Array (src is set) or an Item (item is set). Items are
// boxed so pointers returned by [Cursor.Value] survive later splices.
type segment[T any] struct {
	src  Source[T]
	item *T
}

func (s segment[T]) isArray() bool { return s.src != nil }

func (s segment[T]) len() int {
	if s.src != nil {
		return s.src.Len()
	}
	return 1
}

// List is a sequence of undecoded runs and decoded elements. The zero value
// is an empty list. A list is not safe for concurrent use.
type List[T any] struct {
	segments []segment[T]
	epoch    uint64
}

// New returns an empty list.
func New[T any]() *List[T] {
	return new(List[T])
}

// FromValues returns a list of the given values.
func FromValues[T any](values ...T) *List[T] {
	l := new(List[T])
	l.segments = items(values)
	return l
}

// FromSource returns a list consisting of the source. The source is not
// decoded.
func FromSource[T any](src Source[T]) *List[T] {
	l := new(List[T])
	if src != nil && src.Len() > 0 {
		l.segments = []segment[T]{{src: src}}
	}
	return l
}

func items[T any](values []T) []segment[T] {
	s := make([]segment[T], len(values))
	for i := range values {
		v := values[i]
		s[i].item = &v
	}
	return s
}

// Len returns the number of elements. It is recomputed from the segments on
// every call.
func (l *List[T]) Len() int {
	var n int
	for _, s := range l.segments {
		n += s.len()
	}
	return n
}

// Clear removes every element. Any existing cursor is invalidated.
func (l *List[T]) Clear() {
	l.segments = nil
	l.epoch++
}

// Append adds values at the end of the list. Any open cursor is invalidated.
func (l *List[T]) Append(values ...T) {
	if len(values) == 0 {
		return
	}
	l.segments = append(l.segments, items(values)...)
	l.epoch++
}

// Segments describes the layout of the list.
func (l *List[T]) Segments() []SegmentInfo {
	info := make([]SegmentInfo, len(l.segments))
	for i, s := range l.segments {
		info[i].Len = s.len()
		if s.isArray() {
			info[i].Kind = ArraySegment
		} else {
			info[i].Kind = ItemSegment
		}
	}
	return info
}

// Values decodes and returns every element.
func (l *List[T]) Values() []T {
	v := make([]T, 0, l.Len())
	for x := range l.Iter() {
		v = append(v, x)
	}
	return v
}

// Cursor returns a cursor positioned at the first element. Only one cursor
// may be used at a time: acquiring a cursor invalidates the previous one, and
// using an invalidated cursor panics.
func (l *List[T]) Cursor() *Cursor[T] {
	l.epoch++
	c := &Cursor[T]{list: l, epoch: l.epoch}
	c.enter()
	return c
}

func (l *List[T]) splice(i int, s ...segment[T]) {
	l.segments = append(l.segments[:i], append(s, l.segments[i:]...)...)
}
