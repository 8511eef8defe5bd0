// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import (
	"bytes"
	stderrs "errors"

	"github.com/toasterparty/randomprime-sub001/internal/util/pool"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

var ErrNotEnoughData = stderrs.New("not enough data")

// Value is implemented by every value that can be encoded.
type Value interface {
	// BinarySize returns the number of bytes WriteBinary will write. For a
	// decoded value it must equal the number of bytes the decoder consumed.
	BinarySize() int

	// WriteBinary encodes the value.
	WriteBinary(w *Writer) error
}

// Codec decodes values of type T given context-dependent arguments of type A.
type Codec[T Value, A any] interface {
	// Decode decodes a value from the reader.
	Decode(rd *Reader, args A) (T, error)

	// FixedSize returns the encoded size shared by every value of T. The
	// second result is false if the size depends on the value.
	FixedSize() (int, bool)
}

// Measurer is implemented by codecs that can determine the encoded size of
// the next value without fully decoding it.
type Measurer[A any] interface {
	Measure(rd *Reader, args A) (int, error)
}

// NoArgs is the argument type of codecs that do not need arguments.
type NoArgs = struct{}

// Read decodes a value and verifies that its declared size equals the number
// of bytes the decoder consumed. A mismatch is a bug in the codec and panics.
func Read[T Value, A any](rd *Reader, codec Codec[T, A], args A) (T, error) {
	start := rd.Offset()
	v, err := codec.Decode(rd, args)
	if err == nil {
		err = rd.Err()
	}
	if err != nil {
		var z T
		return z, errors.UnknownError.Wrap(err)
	}

	if n := rd.Offset() - start; v.BinarySize() != n {
		errors.Panic("%T declares %d bytes but the decoder consumed %d", v, v.BinarySize(), n)
	}
	return v, nil
}

// Measure returns the encoded size of the next value without advancing the
// reader. It uses the codec's fixed size or [Measurer] if available, and
// otherwise decodes the value.
func Measure[T Value, A any](rd *Reader, codec Codec[T, A], args A) (int, error) {
	if n, ok := codec.FixedSize(); ok {
		if n > rd.Len() {
			return 0, errors.MalformedInput.WithCauseAndFormat(ErrNotEnoughData, "need %d bytes at offset %d: %d remaining", n, rd.Offset(), rd.Len())
		}
		return n, nil
	}
	if m, ok := codec.(Measurer[A]); ok {
		n, err := m.Measure(rd.Peek(), args)
		if err != nil {
			return 0, errors.UnknownError.Wrap(err)
		}
		if n > rd.Len() {
			return 0, errors.MalformedInput.WithCauseAndFormat(ErrNotEnoughData, "need %d bytes at offset %d: %d remaining", n, rd.Offset(), rd.Len())
		}
		return n, nil
	}
	v, err := Read(rd.Peek(), codec, args)
	if err != nil {
		return 0, errors.UnknownError.Wrap(err)
	}
	return v.BinarySize(), nil
}

// Write encodes a value and verifies that the number of bytes written equals
// its declared size. A mismatch is a bug in the encoder and panics.
func Write(w *Writer, v Value) (int, error) {
	start := w.Written()
	err := v.WriteBinary(w)
	if err == nil {
		err = w.Err()
	}
	if err != nil {
		return w.Written() - start, errors.UnknownError.Wrap(err)
	}

	n := w.Written() - start
	if n != v.BinarySize() {
		errors.Panic("%T declares %d bytes but the encoder wrote %d", v, v.BinarySize(), n)
	}
	return n, nil
}

var bufferPool = pool.New[bytes.Buffer](func(b *bytes.Buffer) { b.Reset() })

// MarshalBinary encodes a value into a new byte slice.
func MarshalBinary(v Value) ([]byte, error) {
	buf := bufferPool.Get()
	defer bufferPool.Put(buf)
	buf.Grow(v.BinarySize())

	_, err := Write(NewWriter(buf), v)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// Unmarshal decodes a value from b, failing if any bytes remain.
func Unmarshal[T Value, A any](b []byte, codec Codec[T, A], args A) (T, error) {
	rd := NewReader(b)
	v, err := Read(rd, codec, args)
	if err != nil {
		return v, err
	}
	if rd.Len() > 0 {
		var z T
		return z, errors.MalformedInput.WithFormat("%d trailing bytes after %T", rd.Len(), v)
	}
	return v, nil
}
