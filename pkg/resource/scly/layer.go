// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package scly

import (
	"bytes"

	"github.com/toasterparty/randomprime-sub001/pkg/difflist"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

const layerAlign = 32

// Layer is a list of script objects. Objects are decoded when they are
// reached by a cursor or an iterator.
type Layer struct {
	Unknown uint8
	Objects *difflist.List[*Object]
}

func NewLayer() *Layer {
	return &Layer{Objects: difflist.New[*Object]()}
}

func (l *Layer) unpaddedSize() int {
	return 1 + 4 + l.Objects.BinarySize()
}

func (l *Layer) BinarySize() int {
	n := l.unpaddedSize()
	return n + encoding.PadLen(n, layerAlign)
}

func (l *Layer) WriteBinary(w *encoding.Writer) error {
	w.WriteU8(l.Unknown)
	w.WriteU32(uint32(l.Objects.Len()))
	if w.Err() != nil {
		return w.Err()
	}
	err := l.Objects.WriteBinary(w)
	if err != nil {
		return err
	}
	w.WriteZeros(encoding.PadLen(l.unpaddedSize(), layerAlign))
	return w.Err()
}

// decodeLayer decodes a layer from a reader holding exactly the layer.
func decodeLayer(rd *encoding.Reader) (*Layer, error) {
	l := new(Layer)
	l.Unknown = rd.ReadU8()
	count := rd.ReadU32()
	if err := rd.Err(); err != nil {
		return nil, err
	}

	var err error
	l.Objects, err = difflist.Decode(rd, int(count), ObjectCodec{}, encoding.NoArgs{})
	if err != nil {
		return nil, err
	}

	pad := rd.Remaining()
	if len(pad) != encoding.PadLen(rd.Offset(), layerAlign) {
		return nil, errors.MalformedInput.WithFormat("%d bytes after the last object, want %d bytes of padding", len(pad), encoding.PadLen(rd.Offset(), layerAlign))
	}
	if len(bytes.Trim(pad, "\x00")) > 0 {
		return nil, errors.MalformedInput.With("padding is not zero")
	}
	return l, nil
}

// FindObject returns the object with the given instance ID. The object is
// materialized so changes to it are kept.
func (l *Layer) FindObject(id uint32) (*Object, error) {
	for c := l.Objects.Cursor(); !c.AtEnd(); c.Next() {
		o, _ := c.Peek()
		if o.InstanceID != id {
			continue
		}
		v, _ := c.IntoValue()
		return *v, nil
	}
	return nil, errors.NotFound.WithFormat("object %#x not found", id)
}

// InsertObject inserts an object before the object with instance ID before,
// or at the end if before is zero. Instance IDs must be unique within the
// layer.
func (l *Layer) InsertObject(obj *Object, before uint32) error {
	for o := range l.Objects.Iter() {
		if o.InstanceID == obj.InstanceID {
			return errors.Conflict.WithFormat("object %#x already exists", obj.InstanceID)
		}
	}

	if before == 0 {
		l.Objects.Append(obj)
		return nil
	}

	for c := l.Objects.Cursor(); !c.AtEnd(); c.Next() {
		o, _ := c.Peek()
		if o.InstanceID == before {
			c.InsertBefore(obj)
			return nil
		}
	}
	return errors.NotFound.WithFormat("object %#x not found", before)
}
