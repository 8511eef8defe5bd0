// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

// Writer is an output sink that counts every byte written. All multi-byte
// values are big-endian. Like [Reader], the first failure is latched and
// subsequent writes are dropped.
type Writer struct {
	w   io.Writer
	n   int
	err error
	buf [8]byte
}

var _ io.Writer = (*Writer)(nil)

// NewWriter returns a writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int { return w.n }

// Err returns the first error encountered by the writer.
func (w *Writer) Err() error { return w.err }

// Write implements [io.Writer].
func (w *Writer) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(b)
	w.n += n
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = errors.EncodingError.WithCauseAndFormat(err, "write %d bytes at offset %d", len(b), w.n-n)
	}
	return n, w.err
}

func (w *Writer) WriteBytes(b []byte) { _, _ = w.Write(b) }

func (w *Writer) WriteU8(v uint8) {
	w.buf[0] = v
	_, _ = w.Write(w.buf[:1])
}

func (w *Writer) WriteU16(v uint16) {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	_, _ = w.Write(w.buf[:2])
}

func (w *Writer) WriteU32(v uint32) {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	_, _ = w.Write(w.buf[:4])
}

func (w *Writer) WriteU64(v uint64) {
	binary.BigEndian.PutUint64(w.buf[:8], v)
	_, _ = w.Write(w.buf[:8])
}

func (w *Writer) WriteI32(v int32) { w.WriteU32(uint32(v)) }

func (w *Writer) WriteF32(v float32) { w.WriteU32(math.Float32bits(v)) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

func (w *Writer) WriteFourCC(v FourCC) { _, _ = w.Write(v[:]) }

var zeros [32]byte

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) {
	for n > 0 {
		m := min(n, len(zeros))
		_, _ = w.Write(zeros[:m])
		n -= m
	}
}

// PadLen returns the number of bytes needed to pad size to a multiple of
// align.
func PadLen(size, align int) int {
	if align <= 1 {
		return 0
	}
	return (align - size%align) % align
}
