// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package difflist

// Step calls fn and then advances the cursor, whether or not fn succeeded.
// fn must not release the cursor with [Cursor.IntoValue].
func (c *Cursor[T]) Step(fn func(*Cursor[T]) error) error {
	defer c.Next()
	return fn(c)
}

// ForEach acquires a cursor and steps it through the list, calling fn at each
// position. Elements inserted by fn with [Cursor.InsertAfter] are not
// visited; after [Cursor.InsertBefore] the next step lands on the element
// fn was called for. ForEach stops at the first error.
func (l *List[T]) ForEach(fn func(*Cursor[T]) error) error {
	c := l.Cursor()
	for !c.AtEnd() {
		err := c.Step(fn)
		if err != nil {
			return err
		}
	}
	return nil
}
