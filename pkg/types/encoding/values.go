// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import "fmt"

// FourCC is a four character code, as used for resource magics and types.
type FourCC [4]byte

// NewFourCC converts a four character string to a FourCC. It panics if s is
// not four bytes long.
func NewFourCC(s string) FourCC {
	if len(s) != 4 {
		panic(fmt.Errorf("%q is not a four character code", s))
	}
	var v FourCC
	copy(v[:], s)
	return v
}

func (v FourCC) String() string { return string(v[:]) }

// FourCCCodec is the [Codec] for [FourCC].
type FourCCCodec struct{}

func (v FourCC) BinarySize() int             { return 4 }
func (v FourCC) WriteBinary(w *Writer) error { w.WriteFourCC(v); return w.Err() }
func (FourCCCodec) FixedSize() (int, bool)   { return 4, true }

func (FourCCCodec) Decode(rd *Reader, _ NoArgs) (FourCC, error) {
	return rd.ReadFourCC(), rd.Err()
}

// Fixed-width integer and float values. Each has a codec of the same name
// with a Codec suffix.
type (
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
	I32 int32
	F32 float32

	U8Codec  struct{}
	U16Codec struct{}
	U32Codec struct{}
	U64Codec struct{}
	I32Codec struct{}
	F32Codec struct{}
)

func (U8) BinarySize() int  { return 1 }
func (U16) BinarySize() int { return 2 }
func (U32) BinarySize() int { return 4 }
func (U64) BinarySize() int { return 8 }
func (I32) BinarySize() int { return 4 }
func (F32) BinarySize() int { return 4 }

func (v U8) WriteBinary(w *Writer) error  { w.WriteU8(uint8(v)); return w.Err() }
func (v U16) WriteBinary(w *Writer) error { w.WriteU16(uint16(v)); return w.Err() }
func (v U32) WriteBinary(w *Writer) error { w.WriteU32(uint32(v)); return w.Err() }
func (v U64) WriteBinary(w *Writer) error { w.WriteU64(uint64(v)); return w.Err() }
func (v I32) WriteBinary(w *Writer) error { w.WriteI32(int32(v)); return w.Err() }
func (v F32) WriteBinary(w *Writer) error { w.WriteF32(float32(v)); return w.Err() }

func (U8Codec) FixedSize() (int, bool)  { return 1, true }
func (U16Codec) FixedSize() (int, bool) { return 2, true }
func (U32Codec) FixedSize() (int, bool) { return 4, true }
func (U64Codec) FixedSize() (int, bool) { return 8, true }
func (I32Codec) FixedSize() (int, bool) { return 4, true }
func (F32Codec) FixedSize() (int, bool) { return 4, true }

func (U8Codec) Decode(rd *Reader, _ NoArgs) (U8, error)   { return U8(rd.ReadU8()), rd.Err() }
func (U16Codec) Decode(rd *Reader, _ NoArgs) (U16, error) { return U16(rd.ReadU16()), rd.Err() }
func (U32Codec) Decode(rd *Reader, _ NoArgs) (U32, error) { return U32(rd.ReadU32()), rd.Err() }
func (U64Codec) Decode(rd *Reader, _ NoArgs) (U64, error) { return U64(rd.ReadU64()), rd.Err() }
func (I32Codec) Decode(rd *Reader, _ NoArgs) (I32, error) { return I32(rd.ReadI32()), rd.Err() }
func (F32Codec) Decode(rd *Reader, _ NoArgs) (F32, error) { return F32(rd.ReadF32()), rd.Err() }

// Bytes is an opaque run of bytes. Its length is not encoded; the decoder
// takes it as an argument.
type Bytes []byte

// BytesCodec is the [Codec] for [Bytes]. The argument is the length.
type BytesCodec struct{}

func (v Bytes) BinarySize() int             { return len(v) }
func (v Bytes) WriteBinary(w *Writer) error { w.WriteBytes(v); return w.Err() }
func (BytesCodec) FixedSize() (int, bool)   { return 0, false }

func (BytesCodec) Decode(rd *Reader, n int) (Bytes, error) {
	return Bytes(rd.ReadBytes(n)), rd.Err()
}

func (BytesCodec) Measure(_ *Reader, n int) (int, error) { return n, nil }

// Vec3 is three 32-bit floats.
type Vec3 [3]float32

// Vec3Codec is the [Codec] for [Vec3].
type Vec3Codec struct{}

func (Vec3) BinarySize() int { return 12 }

func (v Vec3) WriteBinary(w *Writer) error {
	for _, f := range v {
		w.WriteF32(f)
	}
	return w.Err()
}

func (Vec3Codec) FixedSize() (int, bool) { return 12, true }

func (Vec3Codec) Decode(rd *Reader, _ NoArgs) (Vec3, error) {
	var v Vec3
	for i := range v {
		v[i] = rd.ReadF32()
	}
	return v, rd.Err()
}
