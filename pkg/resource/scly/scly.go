// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package scly reads and writes script layer resources. Objects and their
// connections are held in diff lists, so decoding a resource only decodes
// what is edited and encoding copies everything else verbatim.
package scly

import (
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

var Magic = encoding.NewFourCC("SCLY")

type Scly struct {
	Unknown uint32
	Layers  []*Layer

	// Trailer is whatever follows the last layer. It is preserved as is.
	Trailer []byte
}

// Decode decodes a script layer resource. The result references the
// reader's buffer.
func Decode(rd *encoding.Reader) (*Scly, error) {
	rd.ExpectFourCC(Magic, "magic")
	s := new(Scly)
	s.Unknown = rd.ReadU32()
	count := rd.ReadU32()
	if err := rd.Err(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if uint64(count)*4 > uint64(rd.Len()) {
		return nil, errors.MalformedInput.WithFormat("%d layers do not fit in %d bytes", count, rd.Len())
	}

	sizes := make([]uint32, count)
	for i := range sizes {
		sizes[i] = rd.ReadU32()
	}

	s.Layers = make([]*Layer, count)
	for i, size := range sizes {
		if uint64(size) > uint64(rd.Len()) {
			return nil, errors.MalformedInput.WithFormat("layer %d: size %d exceeds the remaining %d bytes", i, size, rd.Len())
		}
		l, err := decodeLayer(rd.Truncated(int(size)))
		if err != nil {
			return nil, errors.UnknownError.WithFormat("layer %d: %w", i, err)
		}
		s.Layers[i] = l
	}

	s.Trailer = rd.ReadBytes(rd.Len())
	if err := rd.Err(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return s, nil
}

func (s *Scly) BinarySize() int {
	n := 4 + 4 + 4 + 4*len(s.Layers)
	for _, l := range s.Layers {
		n += l.BinarySize()
	}
	return n + len(s.Trailer)
}

func (s *Scly) WriteBinary(w *encoding.Writer) error {
	w.WriteFourCC(Magic)
	w.WriteU32(s.Unknown)
	w.WriteU32(uint32(len(s.Layers)))
	for _, l := range s.Layers {
		w.WriteU32(uint32(l.BinarySize()))
	}
	if w.Err() != nil {
		return w.Err()
	}

	for i, l := range s.Layers {
		_, err := encoding.Write(w, l)
		if err != nil {
			return errors.UnknownError.WithFormat("layer %d: %w", i, err)
		}
	}
	w.WriteBytes(s.Trailer)
	return w.Err()
}

// Layer returns the i'th layer.
func (s *Scly) Layer(i int) (*Layer, error) {
	if i < 0 || i >= len(s.Layers) {
		return nil, errors.NotFound.WithFormat("layer %d not found: have %d layers", i, len(s.Layers))
	}
	return s.Layers[i], nil
}

// AddLayer appends an empty layer and returns it.
func (s *Scly) AddLayer() *Layer {
	l := NewLayer()
	s.Layers = append(s.Layers, l)
	return l
}
