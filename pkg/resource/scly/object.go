// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package scly

import (
	"github.com/toasterparty/randomprime-sub001/pkg/difflist"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

// Connection sends a message to a target object when the source object
// enters a state.
type Connection struct {
	State   uint32
	Message uint32
	Target  uint32
}

const connectionSize = 12

func (Connection) BinarySize() int { return connectionSize }

func (c Connection) WriteBinary(w *encoding.Writer) error {
	w.WriteU32(c.State)
	w.WriteU32(c.Message)
	w.WriteU32(c.Target)
	return w.Err()
}

type ConnectionCodec struct{}

func (ConnectionCodec) FixedSize() (int, bool) { return connectionSize, true }

func (ConnectionCodec) Decode(rd *encoding.Reader, _ encoding.NoArgs) (Connection, error) {
	var c Connection
	c.State = rd.ReadU32()
	c.Message = rd.ReadU32()
	c.Target = rd.ReadU32()
	return c, rd.Err()
}

// Object is a script object. The property data is kept opaque. Decoded
// properties alias the input and must be replaced, not modified in place.
type Object struct {
	Type        uint8
	InstanceID  uint32
	Connections *difflist.List[Connection]
	Properties  []byte
}

// objectHeaderSize is the size of the type and size fields, which are not
// counted by the size field.
const objectHeaderSize = 5

// NewObject returns an object with no connections.
func NewObject(typ uint8, id uint32, properties []byte) *Object {
	return &Object{
		Type:        typ,
		InstanceID:  id,
		Connections: difflist.New[Connection](),
		Properties:  properties,
	}
}

func (o *Object) connections() *difflist.List[Connection] {
	if o.Connections == nil {
		o.Connections = difflist.New[Connection]()
	}
	return o.Connections
}

func (o *Object) BinarySize() int {
	return objectHeaderSize + 8 + o.connections().BinarySize() + len(o.Properties)
}

func (o *Object) WriteBinary(w *encoding.Writer) error {
	w.WriteU8(o.Type)
	w.WriteU32(uint32(o.BinarySize() - objectHeaderSize))
	w.WriteU32(o.InstanceID)
	w.WriteU32(uint32(o.connections().Len()))
	if w.Err() != nil {
		return w.Err()
	}
	err := o.connections().WriteBinary(w)
	if err != nil {
		return errors.UnknownError.WithFormat("object %#x connections: %w", o.InstanceID, err)
	}
	w.WriteBytes(o.Properties)
	return w.Err()
}

// AddConnection appends a connection.
func (o *Object) AddConnection(c Connection) {
	o.connections().Append(c)
}

// SetProperties replaces the property data.
func (o *Object) SetProperties(b []byte) {
	o.Properties = b
}

// ObjectCodec decodes objects. Measuring an object checks the same
// structural constraints as decoding it, so an object that was measured
// successfully always decodes.
type ObjectCodec struct{}

var _ encoding.Measurer[encoding.NoArgs] = ObjectCodec{}

func (ObjectCodec) FixedSize() (int, bool) { return 0, false }

type objectHeader struct {
	typ   uint8
	size  uint32
	id    uint32
	conns int
}

func readObjectHeader(rd *encoding.Reader) (objectHeader, error) {
	start := rd.Offset()
	var h objectHeader
	h.typ = rd.ReadU8()
	h.size = rd.ReadU32()
	h.id = rd.ReadU32()
	n := rd.ReadU32()
	if err := rd.Err(); err != nil {
		return h, err
	}

	if h.size < 8 {
		return h, errors.MalformedInput.WithFormat("object %#x at offset %d: size %d is smaller than its header", h.id, start, h.size)
	}
	if uint64(n)*connectionSize > uint64(h.size-8) {
		return h, errors.MalformedInput.WithFormat("object %#x at offset %d: %d connections do not fit in %d bytes", h.id, start, n, h.size)
	}
	if int(h.size)+objectHeaderSize > rd.Len()+rd.Offset()-start {
		return h, errors.MalformedInput.WithCauseAndFormat(encoding.ErrNotEnoughData, "object %#x at offset %d: size %d exceeds the remaining data", h.id, start, h.size)
	}
	h.conns = int(n)
	return h, nil
}

func (ObjectCodec) Measure(rd *encoding.Reader, _ encoding.NoArgs) (int, error) {
	h, err := readObjectHeader(rd)
	if err != nil {
		return 0, err
	}
	return objectHeaderSize + int(h.size), nil
}

func (ObjectCodec) Decode(rd *encoding.Reader, _ encoding.NoArgs) (*Object, error) {
	h, err := readObjectHeader(rd)
	if err != nil {
		return nil, err
	}

	o := new(Object)
	o.Type = h.typ
	o.InstanceID = h.id
	o.Connections, err = difflist.Decode(rd, h.conns, ConnectionCodec{}, encoding.NoArgs{})
	if err != nil {
		return nil, errors.UnknownError.WithFormat("object %#x: %w", h.id, err)
	}
	o.Properties = rd.ReadBytes(int(h.size) - 8 - h.conns*connectionSize)
	return o, rd.Err()
}
