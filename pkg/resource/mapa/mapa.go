// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package mapa reads and writes map area resources.
package mapa

import (
	"github.com/toasterparty/randomprime-sub001/pkg/difflist"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

const Magic uint32 = 0xDEADD00D

// Transform is a 3x4 row-major affine transform.
type Transform [12]float32

// Identity returns the identity transform translated to a position.
func Identity(position encoding.Vec3) Transform {
	return Transform{
		1, 0, 0, position[0],
		0, 1, 0, position[1],
		0, 0, 1, position[2],
	}
}

func (t Transform) Position() encoding.Vec3 {
	return encoding.Vec3{t[3], t[7], t[11]}
}

func (t *Transform) SetPosition(v encoding.Vec3) {
	t[3], t[7], t[11] = v[0], v[1], v[2]
}

const objectSize = 0x50

type Object struct {
	Type       uint32
	Visibility uint32
	EditorID   uint32
	Unknown    uint32
	Transform  Transform
	Padding    [4]uint32
}

func (*Object) BinarySize() int { return objectSize }

func (o *Object) WriteBinary(w *encoding.Writer) error {
	w.WriteU32(o.Type)
	w.WriteU32(o.Visibility)
	w.WriteU32(o.EditorID)
	w.WriteU32(o.Unknown)
	for _, f := range o.Transform {
		w.WriteF32(f)
	}
	for _, p := range o.Padding {
		w.WriteU32(p)
	}
	return w.Err()
}

type ObjectCodec struct{}

func (ObjectCodec) FixedSize() (int, bool) { return objectSize, true }

func (ObjectCodec) Decode(rd *encoding.Reader, _ encoding.NoArgs) (*Object, error) {
	o := new(Object)
	o.Type = rd.ReadU32()
	o.Visibility = rd.ReadU32()
	o.EditorID = rd.ReadU32()
	o.Unknown = rd.ReadU32()
	for i := range o.Transform {
		o.Transform[i] = rd.ReadF32()
	}
	for i := range o.Padding {
		o.Padding[i] = rd.ReadU32()
	}
	return o, rd.Err()
}

type Header struct {
	Version    uint32
	Unknown    uint32
	Visibility uint32
	Bounds     [6]float32
}

// MapArea is a map area resource. Surfaces and everything after the
// vertices are kept opaque.
type MapArea struct {
	Header
	SurfaceCount uint32
	Objects      *difflist.List[*Object]
	Vertices     *difflist.List[encoding.Vec3]

	// Rest holds the surface tables and primitive data, copied verbatim.
	// Offsets inside it are not rewritten, so it moves as a block when
	// objects or vertices are added. Surfaces refer to vertices by index.
	Rest []byte
}

const headerSize = 4 + 4 + 4 + 4 + 6*4 + 4 + 4 + 4

func New(h Header) *MapArea {
	return &MapArea{
		Header:   h,
		Objects:  difflist.New[*Object](),
		Vertices: difflist.New[encoding.Vec3](),
	}
}

// Decode decodes a map area. The result references the reader's buffer.
func Decode(rd *encoding.Reader) (*MapArea, error) {
	rd.ExpectU32(Magic, "magic")
	m := new(MapArea)
	m.Version = rd.ReadU32()
	m.Unknown = rd.ReadU32()
	m.Visibility = rd.ReadU32()
	for i := range m.Bounds {
		m.Bounds[i] = rd.ReadF32()
	}
	objects := rd.ReadU32()
	vertices := rd.ReadU32()
	m.SurfaceCount = rd.ReadU32()
	if err := rd.Err(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	var err error
	m.Objects, err = difflist.Decode(rd, int(objects), ObjectCodec{}, encoding.NoArgs{})
	if err != nil {
		return nil, errors.UnknownError.WithFormat("objects: %w", err)
	}

	m.Vertices, err = difflist.Decode(rd, int(vertices), encoding.Vec3Codec{}, encoding.NoArgs{})
	if err != nil {
		return nil, errors.UnknownError.WithFormat("vertices: %w", err)
	}

	m.Rest = rd.ReadBytes(rd.Len())
	return m, nil
}

func (m *MapArea) BinarySize() int {
	return headerSize + m.Objects.BinarySize() + m.Vertices.BinarySize() + len(m.Rest)
}

func (m *MapArea) WriteBinary(w *encoding.Writer) error {
	w.WriteU32(Magic)
	w.WriteU32(m.Version)
	w.WriteU32(m.Unknown)
	w.WriteU32(m.Visibility)
	for _, f := range m.Bounds {
		w.WriteF32(f)
	}
	w.WriteU32(uint32(m.Objects.Len()))
	w.WriteU32(uint32(m.Vertices.Len()))
	w.WriteU32(m.SurfaceCount)
	if w.Err() != nil {
		return w.Err()
	}

	err := m.Objects.WriteBinary(w)
	if err != nil {
		return errors.UnknownError.WithFormat("objects: %w", err)
	}
	err = m.Vertices.WriteBinary(w)
	if err != nil {
		return errors.UnknownError.WithFormat("vertices: %w", err)
	}
	w.WriteBytes(m.Rest)
	return w.Err()
}

// FindObject returns the object with the given editor ID. The object is
// materialized so changes to it are kept.
func (m *MapArea) FindObject(editorID uint32) (*Object, error) {
	for c := m.Objects.Cursor(); !c.AtEnd(); c.Next() {
		o, _ := c.Peek()
		if o.EditorID != editorID {
			continue
		}
		v, _ := c.IntoValue()
		return *v, nil
	}
	return nil, errors.NotFound.WithFormat("map object %#x not found", editorID)
}

// AddObject appends an object. Editor IDs must be unique. The surface data
// that follows the objects moves by one object's size and is not otherwise
// changed.
func (m *MapArea) AddObject(obj *Object) error {
	for o := range m.Objects.Iter() {
		if o.EditorID == obj.EditorID {
			return errors.Conflict.WithFormat("map object %#x already exists", obj.EditorID)
		}
	}
	m.Objects.Append(obj)
	return nil
}

// AddVertex appends a vertex and returns its index. Existing vertices keep
// their indices, so surfaces that refer to them stay valid. Surfaces are not
// updated to use the new vertex.
func (m *MapArea) AddVertex(v encoding.Vec3) int {
	m.Vertices.Append(v)
	return m.Vertices.Len() - 1
}
