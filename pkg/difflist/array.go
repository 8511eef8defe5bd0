// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package difflist

import (
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

// Array is a [Source] over encoded elements. It holds a view of the buffer it
// was read from; splitting an array creates new views of the same buffer
// without copying. The buffer must not be modified.
//
// Array is an [encoding.Value] that writes its bytes back unchanged.
type Array[T encoding.Value, A any] struct {
	data  []byte
	count int
	codec encoding.Codec[T, A]
	args  A
}

var _ Source[encoding.U32] = (*Array[encoding.U32, encoding.NoArgs])(nil)
var _ encoding.Value = (*Array[encoding.U32, encoding.NoArgs])(nil)

// NewArray returns an array of count elements encoded in data. The caller is
// responsible for data holding exactly count elements.
func NewArray[T encoding.Value, A any](data []byte, count int, codec encoding.Codec[T, A], args A) *Array[T, A] {
	return &Array[T, A]{data: data, count: count, codec: codec, args: args}
}

// ReadArray reads count elements from the reader without decoding them. If
// the codec has a fixed size the extent is computed directly, otherwise every
// element is measured.
func ReadArray[T encoding.Value, A any](rd *encoding.Reader, count int, codec encoding.Codec[T, A], args A) (*Array[T, A], error) {
	if count < 0 {
		return nil, errors.MalformedInput.WithFormat("negative element count %d", count)
	}

	var size int
	if n, ok := codec.FixedSize(); ok {
		size = n * count
	} else {
		peek := rd.Peek()
		for i := 0; i < count; i++ {
			n, err := encoding.Measure(peek, codec, args)
			if err != nil {
				return nil, errors.UnknownError.WithFormat("element %d: %w", i, err)
			}
			peek.Advance(n)
		}
		size = peek.Offset() - rd.Offset()
	}

	data := rd.ReadBytes(size)
	if err := rd.Err(); err != nil {
		return nil, errors.UnknownError.WithFormat("read %d elements: %w", count, err)
	}
	return NewArray(data, count, codec, args), nil
}

func (a *Array[T, A]) Len() int { return a.count }

func (a *Array[T, A]) Cursor() SourceCursor[T] {
	return &arrayCursor[T, A]{array: a, size: -1}
}

// BinarySize returns the size of the encoded elements.
func (a *Array[T, A]) BinarySize() int { return len(a.data) }

// WriteBinary writes the encoded elements unchanged.
func (a *Array[T, A]) WriteBinary(w *encoding.Writer) error {
	w.WriteBytes(a.data)
	return w.Err()
}

// sub returns the elements [i, j) occupying data[start:end], or nil if there
// are none.
func (a *Array[T, A]) sub(i, j, start, end int) Source[T] {
	if i >= j {
		return nil
	}
	return &Array[T, A]{
		data:  a.data[start:end:end],
		count: j - i,
		codec: a.codec,
		args:  a.args,
	}
}

type arrayCursor[T encoding.Value, A any] struct {
	array    *Array[T, A]
	index    int
	offset   int
	size     int
	consumed bool
}

func (c *arrayCursor[T, A]) check() {
	if c.consumed {
		errors.Panic("array cursor used after it was split")
	}
	if c.index >= c.array.count {
		errors.Panic("array cursor is past the end")
	}
}

// elemSize returns the size of the current element. The source was measured
// when it was read so failures here mean the buffer was corrupted.
func (c *arrayCursor[T, A]) elemSize() int {
	if c.size >= 0 {
		return c.size
	}
	rd := encoding.NewReader(c.array.data[c.offset:])
	n, err := encoding.Measure(rd, c.array.codec, c.array.args)
	if err != nil {
		errors.Panic("measure element %d of a validated array: %v", c.index, err)
	}
	c.size = n
	return n
}

func (c *arrayCursor[T, A]) Next() bool {
	if c.consumed {
		errors.Panic("array cursor used after it was split")
	}
	if c.index >= c.array.count {
		return false
	}
	c.offset += c.elemSize()
	c.index++
	c.size = -1
	return c.index < c.array.count
}

func (c *arrayCursor[T, A]) Get() T {
	c.check()
	rd := encoding.NewReader(c.array.data[c.offset:])
	v, err := encoding.Read(rd, c.array.codec, c.array.args)
	if err != nil {
		errors.Panic("decode element %d of a validated array: %v", c.index, err)
	}
	c.size = v.BinarySize()
	return v
}

func (c *arrayCursor[T, A]) Split() (left, right Source[T]) {
	c.check()
	c.consumed = true
	a := c.array
	return a.sub(0, c.index, 0, c.offset), a.sub(c.index, a.count, c.offset, len(a.data))
}

func (c *arrayCursor[T, A]) SplitAround() (left Source[T], item T, right Source[T]) {
	item = c.Get()
	c.consumed = true
	a := c.array
	end := c.offset + c.size
	return a.sub(0, c.index, 0, c.offset), item, a.sub(c.index+1, a.count, end, len(a.data))
}
