// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package patcher

import (
	"encoding/hex"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/toasterparty/randomprime-sub001/pkg/resource/mapa"
	"github.com/toasterparty/randomprime-sub001/pkg/resource/scly"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

// Summary describes the contents of a resource.
type Summary struct {
	Kind   string         `yaml:"kind"`
	Size   int            `yaml:"size"`
	Layers []LayerSummary `yaml:"layers,omitempty"`
	Map    *MapSummary    `yaml:"map,omitempty"`
}

type LayerSummary struct {
	Index       int           `yaml:"index"`
	Size        int           `yaml:"size"`
	Objects     int           `yaml:"objects"`
	Connections int           `yaml:"connections"`
	Types       map[uint8]int `yaml:"types"`
}

type MapSummary struct {
	Objects  int    `yaml:"objects"`
	Vertices int    `yaml:"vertices"`
	Surfaces uint32 `yaml:"surfaces"`
	Rest     int    `yaml:"rest"`
}

// Describe summarizes a decoded resource. It decodes every object but does
// not modify the resource.
func Describe(v encoding.Value) *Summary {
	s := &Summary{Kind: KindUnknown.String(), Size: v.BinarySize()}
	switch v := v.(type) {
	case *scly.Scly:
		s.Kind = KindScly.String()
		for i, l := range v.Layers {
			ls := LayerSummary{
				Index:   i,
				Size:    l.BinarySize(),
				Objects: l.Objects.Len(),
				Types:   map[uint8]int{},
			}
			for o := range l.Objects.Iter() {
				ls.Connections += o.Connections.Len()
				ls.Types[o.Type]++
			}
			s.Layers = append(s.Layers, ls)
		}

	case *mapa.MapArea:
		s.Kind = KindMapa.String()
		s.Map = &MapSummary{
			Objects:  v.Objects.Len(),
			Vertices: v.Vertices.Len(),
			Surfaces: v.SurfaceCount,
			Rest:     len(v.Rest),
		}
	}
	return s
}

// HexDiff compares the hex dumps of two buffers line by line. Changed lines
// are prefixed with - or +, unchanged lines are omitted.
func HexDiff(a, b []byte) string {
	dmp := diffmatchpatch.New()
	x, y, lines := dmp.DiffLinesToRunes(hex.Dump(a), hex.Dump(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(x, y, false), lines)

	sb := new(strings.Builder)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
