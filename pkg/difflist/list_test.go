// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package difflist_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	. "github.com/toasterparty/randomprime-sub001/pkg/difflist"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

type U32 = encoding.U32

func u32s(v ...uint32) []U32 {
	u := make([]U32, len(v))
	for i, v := range v {
		u[i] = U32(v)
	}
	return u
}

func encodeU32s(v ...uint32) []byte {
	buf := new(bytes.Buffer)
	w := encoding.NewWriter(buf)
	for _, v := range v {
		w.WriteU32(v)
	}
	return buf.Bytes()
}

func decodeU32s(t testing.TB, v ...uint32) *List[U32] {
	t.Helper()
	l, err := Decode[U32](encoding.NewReader(encodeU32s(v...)), len(v), encoding.U32Codec{}, encoding.NoArgs{})
	require.NoError(t, err)
	return l
}

// sources returns a list over 1-6 for every kind of source.
func sources(t testing.TB) map[string]func() *List[U32] {
	return map[string]func() *List[U32]{
		"Slice": func() *List[U32] { return FromSource[U32](Slice[U32](u32s(1, 2, 3, 4, 5, 6))) },
		"Array": func() *List[U32] { return decodeU32s(t, 1, 2, 3, 4, 5, 6) },
	}
}

func requireInvariants[T any](t testing.TB, l *List[T]) {
	t.Helper()
	var n int
	for i, s := range l.Segments() {
		switch s.Kind {
		case ArraySegment:
			require.NotZerof(t, s.Len, "segment %d is an empty array", i)
		case ItemSegment:
			require.Equalf(t, 1, s.Len, "segment %d", i)
		}
		n += s.Len
	}
	require.Equal(t, n, l.Len())
}

func TestIdentity(t *testing.T) {
	l := FromValues(u32s(1, 2, 3, 4, 5, 6)...)
	require.Equal(t, u32s(1, 2, 3, 4, 5, 6), l.Values())
	require.Equal(t, 6, l.Len())
	requireInvariants(t, l)

	for _, s := range l.Segments() {
		require.Equal(t, ItemSegment, s.Kind)
	}
}

func TestReadThrough(t *testing.T) {
	for name, newList := range sources(t) {
		t.Run(name, func(t *testing.T) {
			l := newList()
			require.Equal(t, u32s(1, 2, 3, 4, 5, 6), l.Values())
			require.Equal(t, []SegmentInfo{{ArraySegment, 6}}, l.Segments())
		})
	}
}

func TestInsertBeforeAfter(t *testing.T) {
	for name, newList := range sources(t) {
		t.Run(name, func(t *testing.T) {
			l := newList()
			c := l.Cursor()
			c.InsertBefore(0)

			v, ok := c.Peek()
			require.True(t, ok)
			require.Equal(t, U32(0), v)

			require.True(t, c.Next())
			require.True(t, c.Next())
			c.InsertAfter(7)

			// The cursor stays on the original element
			v, ok = c.Peek()
			require.True(t, ok)
			require.Equal(t, U32(2), v)

			require.Equal(t, u32s(0, 1, 7, 2, 3, 4, 5, 6), l.Values())
			require.Equal(t, 8, l.Len())
			requireInvariants(t, l)
		})
	}
}

func TestRepeatedInsert(t *testing.T) {
	for name, newList := range sources(t) {
		t.Run(name, func(t *testing.T) {
			l := newList()
			err := l.ForEach(func(c *Cursor[U32]) error {
				c.InsertAfter(9)
				return nil
			})
			require.NoError(t, err)
			require.Equal(t, u32s(9, 1, 9, 2, 9, 3, 9, 4, 9, 5, 9, 6), l.Values())
			requireInvariants(t, l)
		})
	}
}

func TestRepeatedMultiValueInsert(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	var visited []U32
	err := l.ForEach(func(c *Cursor[U32]) error {
		c.InsertAfter(7, 8)
		v, ok := c.Peek()
		require.True(t, ok)
		visited = append(visited, v)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, u32s(1, 2, 3), visited)
	require.Equal(t, u32s(7, 8, 1, 7, 8, 2, 7, 8, 3), l.Values())
	requireInvariants(t, l)
}

func TestInsertAtEnd(t *testing.T) {
	l := decodeU32s(t, 1, 2)
	c := l.Cursor()
	require.True(t, c.Next())
	require.False(t, c.Next())
	require.True(t, c.AtEnd())

	c.InsertAfter(3)
	require.True(t, c.AtEnd())
	_, ok := c.Peek()
	require.False(t, ok)

	c.InsertBefore(4, 5)
	v, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, U32(4), v)

	require.Equal(t, u32s(1, 2, 3, 4, 5), l.Values())
	requireInvariants(t, l)
}

func TestInsertNothing(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	c := l.Cursor()
	c.Next()
	c.InsertBefore()
	c.InsertAfter()
	require.Equal(t, []SegmentInfo{{ArraySegment, 3}}, l.Segments())
	v, _ := c.Peek()
	require.Equal(t, U32(2), v)
}

func TestEmpty(t *testing.T) {
	for name, l := range map[string]*List[U32]{
		"New":        New[U32](),
		"Zero":       new(List[U32]),
		"FromSource": FromSource[U32](Slice[U32](nil)),
		"Decode":     decodeU32s(t),
	} {
		t.Run(name, func(t *testing.T) {
			require.Zero(t, l.Len())
			require.Empty(t, l.Segments())
			require.Empty(t, l.Values())

			c := l.Cursor()
			require.True(t, c.AtEnd())
			require.False(t, c.Next())
			_, ok := c.Peek()
			require.False(t, ok)
			_, ok = c.Value()
			require.False(t, ok)

			c.InsertBefore(1)
			require.Equal(t, u32s(1), l.Values())
		})
	}
}

func TestValue(t *testing.T) {
	for name, newList := range sources(t) {
		t.Run(name, func(t *testing.T) {
			l := newList()
			c := l.Cursor()
			c.Next()
			c.Next()

			v, ok := c.Value()
			require.True(t, ok)
			require.Equal(t, U32(3), *v)
			*v = 30

			require.Equal(t, []SegmentInfo{
				{ArraySegment, 2},
				{ItemSegment, 1},
				{ArraySegment, 3},
			}, l.Segments())
			require.Equal(t, u32s(1, 2, 30, 4, 5, 6), l.Values())

			// Materializing again returns the same element
			u, ok := c.Value()
			require.True(t, ok)
			require.Same(t, v, u)

			// The pointer survives splices
			c.InsertBefore(0)
			c.InsertAfter(10, 11)
			*v = 31
			require.Equal(t, u32s(1, 2, 10, 11, 0, 31, 4, 5, 6), l.Values())

			require.True(t, c.Next())
			w, _ := c.Peek()
			require.Equal(t, U32(31), w)
			requireInvariants(t, l)
		})
	}
}

func TestValueAtEdges(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	c := l.Cursor()
	v, ok := c.Value()
	require.True(t, ok)
	*v = 10
	require.Equal(t, []SegmentInfo{{ItemSegment, 1}, {ArraySegment, 2}}, l.Segments())

	c.Next()
	c.Next()
	v, ok = c.Value()
	require.True(t, ok)
	*v = 30
	require.Equal(t, []SegmentInfo{{ItemSegment, 1}, {ArraySegment, 1}, {ItemSegment, 1}}, l.Segments())
	require.Equal(t, u32s(10, 2, 30), l.Values())

	require.False(t, c.Next())
	_, ok = c.Value()
	require.False(t, ok)
}

func TestIntoValue(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	c := l.Cursor()
	c.Next()
	v, ok := c.IntoValue()
	require.True(t, ok)
	*v = 20
	require.Equal(t, u32s(1, 20, 3), l.Values())

	require.PanicsWithError(t, "diff list cursor used after IntoValue", func() { c.Next() })
}

func TestCursorInvalidation(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	c := l.Cursor()
	c.Next()

	d := l.Cursor()
	v, _ := d.Peek()
	require.Equal(t, U32(1), v)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, errors.InternalError)
	}()
	c.Peek()
}

func TestClear(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	c := l.Cursor()
	c.InsertBefore(0)
	l.Clear()
	require.Zero(t, l.Len())
	require.Empty(t, l.Segments())
	require.Panics(t, func() { c.Next() })
}

func TestAppend(t *testing.T) {
	for name, newList := range sources(t) {
		t.Run(name, func(t *testing.T) {
			l := newList()
			c := l.Cursor()
			l.Append(7, 8)
			require.Equal(t, u32s(1, 2, 3, 4, 5, 6, 7, 8), l.Values())
			require.Equal(t, ArraySegment, l.Segments()[0].Kind, "Appending does not decode")
			requireInvariants(t, l)
			require.Panics(t, func() { c.Next() })

			l = New[U32]()
			l.Append()
			require.Zero(t, l.Len())
			l.Append(1)
			require.Equal(t, u32s(1), l.Values())
		})
	}
}

func TestReadOnlyOperations(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3, 4)
	c := l.Cursor()
	c.Next()
	c.InsertAfter(9)
	c.Next()

	segments, n := l.Segments(), l.Len()
	for i := 0; i < 3; i++ {
		v, ok := c.Peek()
		require.True(t, ok)
		require.Equal(t, U32(3), v)
		require.Equal(t, u32s(1, 9, 2, 3, 4), l.Values())

		var all []U32
		for i, v := range l.All() {
			require.Equal(t, len(all), i)
			all = append(all, v)
		}
		require.Equal(t, u32s(1, 9, 2, 3, 4), all)
	}
	require.Equal(t, segments, l.Segments())
	require.Equal(t, n, l.Len())

	// Iteration does not disturb the cursor
	c.InsertBefore(8)
	require.Equal(t, u32s(1, 9, 2, 8, 3, 4), l.Values())
}

func TestIterBreak(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	l.Cursor().InsertAfter(0)
	var got []U32
	for v := range l.Iter() {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, u32s(0, 1), got)
}

func TestStep(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	c := l.Cursor()

	err := c.Step(func(c *Cursor[U32]) error { return errors.BadRequest.With("nope") })
	require.ErrorIs(t, err, errors.BadRequest)

	// The cursor advanced anyway
	v, _ := c.Peek()
	require.Equal(t, U32(2), v)
}

func TestForEachError(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3)
	var seen []U32
	err := l.ForEach(func(c *Cursor[U32]) error {
		v, _ := c.Peek()
		seen = append(seen, v)
		if v == 2 {
			return errors.Conflict.With("stop")
		}
		return nil
	})
	require.ErrorIs(t, err, errors.Conflict)
	require.Equal(t, u32s(1, 2), seen)
}

func TestForEachEdit(t *testing.T) {
	l := decodeU32s(t, 1, 2, 3, 4, 5)
	err := l.ForEach(func(c *Cursor[U32]) error {
		v, _ := c.Peek()
		if v%2 == 0 {
			p, _ := c.Value()
			*p *= 10
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, u32s(1, 20, 3, 40, 5), l.Values())
	require.Equal(t, []SegmentInfo{
		{ArraySegment, 1},
		{ItemSegment, 1},
		{ArraySegment, 1},
		{ItemSegment, 1},
		{ArraySegment, 1},
	}, l.Segments())
}

// TestRandomEdits applies random edits to a list and to a plain slice and
// verifies they agree after every step.
func TestRandomEdits(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))

		var model []uint32
		for i := rng.Intn(20); i >= 0; i-- {
			model = append(model, rng.Uint32()%1000)
		}
		l := decodeU32s(t, model...)
		c := l.Cursor()
		var pos int

		randValues := func() []uint32 {
			v := make([]uint32, rng.Intn(3))
			for i := range v {
				v[i] = 1000 + rng.Uint32()%1000
			}
			return v
		}

		insert := func(v []uint32) {
			model = append(model[:pos], append(v, model[pos:]...)...)
		}

		for step := 0; step < 200; step++ {
			switch op := rng.Intn(10); {
			case op < 4:
				ok := c.Next()
				if pos < len(model) {
					pos++
				}
				require.Equal(t, pos < len(model), ok, "seed %d step %d", seed, step)

			case op < 5:
				v := randValues()
				c.InsertBefore(u32s(v...)...)
				insert(v)

			case op < 7:
				v := randValues()
				c.InsertAfter(u32s(v...)...)
				insert(v)
				pos += len(v)

			case op < 9:
				p, ok := c.Value()
				require.Equal(t, pos < len(model), ok, "seed %d step %d", seed, step)
				if ok {
					x := rng.Uint32() % 1000
					*p = U32(x)
					model[pos] = x
				}

			default:
				c = l.Cursor()
				pos = 0
			}

			require.Equal(t, u32s(model...), l.Values(), "seed %d step %d", seed, step)
			requireInvariants(t, l)

			v, ok := c.Peek()
			if pos < len(model) {
				require.True(t, ok, "seed %d step %d", seed, step)
				require.Equal(t, U32(model[pos]), v, "seed %d step %d", seed, step)
			} else {
				require.False(t, ok, "seed %d step %d", seed, step)
			}
		}

		b, err := encoding.MarshalBinary(l)
		require.NoError(t, err)
		require.Equal(t, encodeU32s(model...), b, "seed %d", seed)
	}
}

// TestRandomVariableEdits is TestRandomEdits over variable-size elements.
// Cursors often move and split runs without decoding the current element, so
// element boundaries must come from the codec's sizing alone.
func TestRandomVariableEdits(t *testing.T) {
	codecs := map[string]encoding.Codec[pstr, encoding.NoArgs]{
		"Decoded":  pstrCodec{},
		"Measured": measuredCodec{},
	}
	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 50; seed++ {
				rng := rand.New(rand.NewSource(seed))

				randString := func() string {
					b := make([]byte, rng.Intn(6))
					for i := range b {
						b[i] = 'a' + byte(rng.Intn(26))
					}
					return string(b)
				}

				var model []string
				for i := rng.Intn(20); i >= 0; i-- {
					model = append(model, randString())
				}
				l, err := Decode[pstr](encoding.NewReader(encodePstrs(t, model...)), len(model), codec, encoding.NoArgs{})
				require.NoError(t, err)
				c := l.Cursor()
				var pos int

				randValues := func() []string {
					v := make([]string, rng.Intn(3))
					for i := range v {
						v[i] = randString()
					}
					return v
				}

				insert := func(v []string) {
					model = append(model[:pos], append(v, model[pos:]...)...)
				}

				for step := 0; step < 200; step++ {
					switch op := rng.Intn(10); {
					case op < 4:
						ok := c.Next()
						if pos < len(model) {
							pos++
						}
						require.Equal(t, pos < len(model), ok, "seed %d step %d", seed, step)

					case op < 5:
						v := randValues()
						c.InsertBefore(pstrs(v...)...)
						insert(v)

					case op < 7:
						v := randValues()
						c.InsertAfter(pstrs(v...)...)
						insert(v)
						pos += len(v)

					case op < 9:
						p, ok := c.Value()
						require.Equal(t, pos < len(model), ok, "seed %d step %d", seed, step)
						if ok {
							x := randString()
							*p = pstr(x)
							model[pos] = x
						}

					default:
						c = l.Cursor()
						pos = 0
					}

					require.Equal(t, pstrs(model...), l.Values(), "seed %d step %d", seed, step)
					require.Equal(t, len(model), l.Len(), "seed %d step %d", seed, step)
					requireInvariants(t, l)

					// Peek decodes, so only do it some of the time
					if rng.Intn(2) == 0 {
						v, ok := c.Peek()
						if pos < len(model) {
							require.True(t, ok, "seed %d step %d", seed, step)
							require.Equal(t, pstr(model[pos]), v, "seed %d step %d", seed, step)
						} else {
							require.False(t, ok, "seed %d step %d", seed, step)
						}
					}
				}

				b, err := encoding.MarshalBinary(l)
				require.NoError(t, err)
				require.Equal(t, encodePstrs(t, model...), b, "seed %d", seed)
				require.Equal(t, len(b), l.BinarySize(), "seed %d", seed)
			}
		})
	}
}
