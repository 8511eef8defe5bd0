// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package difflist

import "iter"

// Iter returns an iterator over the elements of the list. Undecoded runs are
// decoded as they are reached. Iterating never modifies the list and does not
// invalidate the list's cursor, but the list must not be modified while an
// iteration is in progress.
func (l *List[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, s := range l.segments {
			if !s.isArray() {
				if !yield(*s.item) {
					return
				}
				continue
			}

			c := s.src.Cursor()
			for {
				if !yield(c.Get()) {
					return
				}
				if !c.Next() {
					break
				}
			}
		}
	}
}

// All returns an iterator over the indices and elements of the list.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		var i int
		for v := range l.Iter() {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}
