// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package patcher

import (
	"bytes"
	"encoding/binary"

	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/resource/mapa"
	"github.com/toasterparty/randomprime-sub001/pkg/resource/scly"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

// Kind is the kind of a resource.
type Kind int

const (
	KindUnknown Kind = iota
	KindScly
	KindMapa
)

func (k Kind) String() string {
	switch k {
	case KindScly:
		return "scly"
	case KindMapa:
		return "mapa"
	default:
		return "unknown"
	}
}

// DetectKind identifies a resource by its magic number.
func DetectKind(b []byte) Kind {
	switch {
	case bytes.HasPrefix(b, scly.Magic[:]):
		return KindScly
	case len(b) >= 4 && binary.BigEndian.Uint32(b) == mapa.Magic:
		return KindMapa
	default:
		return KindUnknown
	}
}

// Decode decodes a resource of any known kind. The result references b.
func Decode(b []byte) (Kind, encoding.Value, error) {
	kind := DetectKind(b)
	var v encoding.Value
	var err error
	switch kind {
	case KindScly:
		v, err = scly.Decode(encoding.NewReader(b))
	case KindMapa:
		v, err = mapa.Decode(encoding.NewReader(b))
	default:
		return kind, nil, errors.MalformedInput.With("unknown resource kind")
	}
	if err != nil {
		return kind, nil, errors.UnknownError.WithFormat("decode %v: %w", kind, err)
	}
	return kind, v, nil
}

// Roundtrip decodes and re-encodes a resource without changing it.
func Roundtrip(b []byte) ([]byte, error) {
	_, v, err := Decode(b)
	if err != nil {
		return nil, err
	}
	return encoding.MarshalBinary(v)
}
