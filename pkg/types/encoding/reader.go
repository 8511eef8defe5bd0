// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import (
	"encoding/binary"
	"math"

	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

// Reader is a cursor over an immutable byte buffer. All multi-byte values are
// big-endian.
//
// The first failure is latched: every read after it returns a zero value and
// does not advance, and [Reader.Err] returns the failure. Decoders can
// therefore read a whole record and check the error once.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader returns a reader over b. The reader never modifies b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

// Offset returns the number of bytes read so far.
func (r *Reader) Offset() int { return r.off }

// Err returns the first error encountered by the reader.
func (r *Reader) Err() error { return r.err }

// Remaining returns the unread bytes without copying them.
func (r *Reader) Remaining() []byte { return r.buf[r.off:] }

// Peek returns a copy of the reader that can be advanced independently.
func (r *Reader) Peek() *Reader {
	u := *r
	return &u
}

// Truncated returns a reader over the next n bytes, starting at offset 0, and
// advances r past them.
func (r *Reader) Truncated(n int) *Reader {
	b := r.ReadBytes(n)
	u := NewReader(b)
	u.err = r.err
	return u
}

// Fail latches err unless an error has already been latched. Decoders use it
// to report structural problems they detect themselves.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 {
		r.err = errors.MalformedInput.WithFormat("negative length %d at offset %d", n, r.off)
		return nil
	}
	if n > r.Len() {
		r.err = errors.MalformedInput.WithCauseAndFormat(ErrNotEnoughData, "read %d bytes at offset %d: %d remaining", n, r.off, r.Len())
		return nil
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b
}

// Advance skips n bytes, for example bytes consumed by a nested decode.
func (r *Reader) Advance(n int) { r.take(n) }

// ReadBytes returns the next n bytes. The result aliases the reader's buffer
// and must not be modified.
func (r *Reader) ReadBytes(n int) []byte { return r.take(n) }

func (r *Reader) ReadU8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) ReadU16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *Reader) ReadU32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *Reader) ReadU64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (r *Reader) ReadI32() int32 { return int32(r.ReadU32()) }

func (r *Reader) ReadF32() float32 { return math.Float32frombits(r.ReadU32()) }

// ReadBool reads a single byte that must be 0 or 1.
func (r *Reader) ReadBool() bool {
	off := r.off
	switch r.ReadU8() {
	case 0:
		return false
	case 1:
		return true
	default:
		r.Fail(errors.MalformedInput.WithFormat("invalid boolean at offset %d", off))
		return false
	}
}

// ReadFourCC reads a four character code.
func (r *Reader) ReadFourCC() FourCC {
	var v FourCC
	copy(v[:], r.take(4))
	return v
}

// ExpectU32 reads a u32 and latches a [errors.MalformedInput] error if it is
// not the expected value.
func (r *Reader) ExpectU32(want uint32, what string) {
	off := r.off
	got := r.ReadU32()
	if r.err == nil && got != want {
		r.err = errors.MalformedInput.WithFormat("%s: want %#x, got %#x at offset %d", what, want, got, off)
	}
}

// ExpectFourCC reads a four character code and latches a
// [errors.MalformedInput] error if it is not the expected value.
func (r *Reader) ExpectFourCC(want FourCC, what string) {
	off := r.off
	got := r.ReadFourCC()
	if r.err == nil && got != want {
		r.err = errors.MalformedInput.WithFormat("%s: want %q, got %q at offset %d", what, want, got, off)
	}
}
