// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package patcher_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	. "github.com/toasterparty/randomprime-sub001/pkg/patcher"
	"github.com/toasterparty/randomprime-sub001/pkg/resource/scly"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

func TestDescribe(t *testing.T) {
	_, v, err := Decode(sampleScly(t))
	require.NoError(t, err)
	res := v.(*scly.Scly)
	o, err := res.Layers[0].FindObject(2)
	require.NoError(t, err)
	o.AddConnection(scly.Connection{Target: 1})

	s := Describe(v)
	require.Equal(t, "scly", s.Kind)
	require.Equal(t, v.BinarySize(), s.Size)
	require.Len(t, s.Layers, 2)
	require.Equal(t, 3, s.Layers[0].Objects)
	require.Equal(t, 1, s.Layers[0].Connections)
	require.Equal(t, map[uint8]int{1: 3}, s.Layers[0].Types)
	require.Nil(t, s.Map)

	_, v, err = Decode(sampleMapa(t))
	require.NoError(t, err)
	s = Describe(v)
	require.Equal(t, "mapa", s.Kind)
	require.Equal(t, 1, s.Map.Objects)
	require.Zero(t, s.Map.Vertices)

	s = Describe(encoding.U32(1))
	require.Equal(t, "unknown", s.Kind)
}

func TestHexDiff(t *testing.T) {
	a := bytes.Repeat([]byte{0xAA}, 64)
	b := bytes.Clone(a)
	b[40] = 0xBB

	d := HexDiff(a, b)
	lines := strings.Split(strings.TrimSuffix(d, "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "-00000020"))
	require.True(t, strings.HasPrefix(lines[1], "+00000020"))
	require.Contains(t, lines[1], "bb")

	require.Empty(t, HexDiff(a, a))

	// Only the first and last rows change
	c := bytes.Clone(a)
	c[0] = 0x11
	c[63] = 0x22
	d = HexDiff(a, c)
	require.NotContains(t, d, "00000010")
	require.NotContains(t, d, "00000020")
	lines = strings.Split(strings.TrimSuffix(d, "\n"), "\n")
	require.Len(t, lines, 4)
	var removed, added []string
	for _, line := range lines {
		switch line[0] {
		case '-':
			removed = append(removed, line[1:9])
		case '+':
			added = append(added, line[1:9])
		}
	}
	require.Equal(t, []string{"00000000", "00000030"}, removed)
	require.Equal(t, []string{"00000000", "00000030"}, added)
}
