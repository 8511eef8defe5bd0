// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	. "github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

func TestPrimitives(t *testing.T) {
	buf := new(bytes.Buffer)
	w := NewWriter(buf)
	w.WriteU8(0x01)
	w.WriteU16(0x0203)
	w.WriteU32(0x04050607)
	w.WriteU64(0x08090A0B0C0D0E0F)
	w.WriteI32(-2)
	w.WriteF32(1.5)
	w.WriteBool(true)
	w.WriteFourCC(NewFourCC("SCLY"))
	w.WriteZeros(3)
	require.NoError(t, w.Err())
	require.Equal(t, 1+2+4+8+4+4+1+4+3, w.Written())
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, buf.Bytes()[:7])

	r := NewReader(buf.Bytes())
	require.Equal(t, uint8(0x01), r.ReadU8())
	require.Equal(t, uint16(0x0203), r.ReadU16())
	require.Equal(t, uint32(0x04050607), r.ReadU32())
	require.Equal(t, uint64(0x08090A0B0C0D0E0F), r.ReadU64())
	require.Equal(t, int32(-2), r.ReadI32())
	require.Equal(t, float32(1.5), r.ReadF32())
	require.True(t, r.ReadBool())
	require.Equal(t, "SCLY", r.ReadFourCC().String())
	r.Advance(3)
	require.NoError(t, r.Err())
	require.Zero(t, r.Len())
}

func TestReaderLatchesFirstError(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	require.Equal(t, uint16(0x0102), r.ReadU16())
	require.Zero(t, r.ReadU32())
	require.Error(t, r.Err())
	require.Equal(t, errors.MalformedInput, errors.Code(r.Err()))

	// Nothing is read after a failure, even if it would fit
	require.Zero(t, r.ReadU8())
	require.Equal(t, 2, r.Offset())
}

func TestReaderPeekAndTruncate(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	p := r.Peek()
	p.Advance(4)
	require.Equal(t, 0, r.Offset())

	sub := r.Truncated(2)
	require.Equal(t, 2, r.Offset())
	require.Equal(t, 2, sub.Len())
	require.Equal(t, uint16(0x0102), sub.ReadU16())
	sub.ReadU8()
	require.Error(t, sub.Err())
	require.NoError(t, r.Err())
	require.Equal(t, []byte{3, 4, 5}, r.Remaining())
}

func TestExpect(t *testing.T) {
	r := NewReader([]byte("SCLY\x00\x00\x00\x01"))
	r.ExpectFourCC(NewFourCC("SCLY"), "magic")
	r.ExpectU32(1, "version")
	require.NoError(t, r.Err())

	r = NewReader([]byte("MREA"))
	r.ExpectFourCC(NewFourCC("SCLY"), "magic")
	require.EqualError(t, r.Err(), `magic: want "SCLY", got "MREA" at offset 0`)
	require.Equal(t, errors.MalformedInput, errors.Code(r.Err()))

	r = NewReader([]byte{2})
	r.ReadBool()
	require.Equal(t, errors.MalformedInput, errors.Code(r.Err()))
}

func TestPadLen(t *testing.T) {
	cases := []struct{ size, align, pad int }{
		{0, 32, 0},
		{1, 32, 31},
		{31, 32, 1},
		{32, 32, 0},
		{33, 32, 31},
		{5, 1, 0},
		{5, 0, 0},
	}
	for _, c := range cases {
		require.Equalf(t, c.pad, PadLen(c.size, c.align), "PadLen(%d, %d)", c.size, c.align)
	}
}

// liar declares a size that does not match what it reads or writes.
type liar struct{}

type liarCodec struct{}

func (liar) BinarySize() int { return 3 }

func (liar) WriteBinary(w *Writer) error { w.WriteU32(0); return w.Err() }

func (liarCodec) FixedSize() (int, bool) { return 0, false }

func (liarCodec) Decode(r *Reader, _ NoArgs) (liar, error) {
	r.ReadU32()
	return liar{}, r.Err()
}

func TestSizeMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		_, _ = Read[liar](NewReader(make([]byte, 8)), liarCodec{}, NoArgs{})
	})
	require.Panics(t, func() {
		_, _ = Write(NewWriter(new(bytes.Buffer)), liar{})
	})
}

func TestUnmarshal(t *testing.T) {
	v, err := Unmarshal[U32]([]byte{0, 0, 1, 0}, U32Codec{}, NoArgs{})
	require.NoError(t, err)
	require.Equal(t, U32(256), v)

	_, err = Unmarshal[U32]([]byte{0, 0, 1, 0, 0}, U32Codec{}, NoArgs{})
	require.Equal(t, errors.MalformedInput, errors.Code(err))

	b, err := MarshalBinary(Vec3{1, 2, 3})
	require.NoError(t, err)
	u, err := Unmarshal[Vec3](b, Vec3Codec{}, NoArgs{})
	require.NoError(t, err)
	require.Equal(t, Vec3{1, 2, 3}, u)

	s, err := Unmarshal[Bytes]([]byte("abc"), BytesCodec{}, 3)
	require.NoError(t, err)
	require.Equal(t, Bytes("abc"), s)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.NotFound.With("disk gone") }

func TestWriterLatchesFirstError(t *testing.T) {
	w := NewWriter(failWriter{})
	w.WriteU32(1)
	w.WriteU32(2)
	require.Error(t, w.Err())
	require.Equal(t, errors.EncodingError, errors.Code(w.Err()))
	require.ErrorIs(t, w.Err(), errors.NotFound)
	require.Zero(t, w.Written())
}
