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

// Decode reads count elements into a list consisting of a single undecoded
// run. See [ReadArray].
func Decode[T encoding.Value, A any](rd *encoding.Reader, count int, codec encoding.Codec[T, A], args A) (*List[T], error) {
	a, err := ReadArray(rd, count, codec, args)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return FromSource[T](a), nil
}

// BinarySize returns the encoded size of the list. It panics if an element or
// run does not implement [encoding.Value].
func (l *List[T]) BinarySize() int {
	var n int
	for i, s := range l.segments {
		if !s.isArray() {
			n += mustValue(i, *s.item).BinarySize()
			continue
		}

		if v, ok := s.src.(encoding.Value); ok {
			n += v.BinarySize()
			continue
		}

		c := s.src.Cursor()
		for {
			n += mustValue(i, c.Get()).BinarySize()
			if !c.Next() {
				break
			}
		}
	}
	return n
}

func mustValue(segment int, v any) encoding.Value {
	u, ok := v.(encoding.Value)
	if !ok {
		panic(errors.NotEncodable.WithFormat("segment %d: %T is not encodable", segment, v))
	}
	return u
}

// WriteBinary writes the elements in order. Undecoded runs that implement
// [encoding.Value], such as [Array], are written as is. Other runs are
// decoded and written element by element.
func (l *List[T]) WriteBinary(w *encoding.Writer) error {
	for i, s := range l.segments {
		if !s.isArray() {
			err := writeValue(w, i, *s.item)
			if err != nil {
				return err
			}
			continue
		}

		if v, ok := s.src.(encoding.Value); ok {
			_, err := encoding.Write(w, v)
			if err != nil {
				return errors.UnknownError.WithFormat("segment %d: %w", i, err)
			}
			continue
		}

		c := s.src.Cursor()
		for {
			err := writeValue(w, i, c.Get())
			if err != nil {
				return err
			}
			if !c.Next() {
				break
			}
		}
	}
	return nil
}

func writeValue(w *encoding.Writer, segment int, v any) error {
	u, ok := v.(encoding.Value)
	if !ok {
		return errors.NotEncodable.WithFormat("segment %d: %T is not encodable", segment, v)
	}
	_, err := encoding.Write(w, u)
	if err != nil {
		return errors.UnknownError.WithFormat("segment %d: %w", segment, err)
	}
	return nil
}
