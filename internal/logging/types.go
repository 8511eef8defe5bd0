// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

// Hex is logged as a hex string.
type Hex []byte

func (h Hex) MarshalJSON() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(b, h)
	return json.Marshal(string(b))
}

func (h Hex) String() string { return hex.EncodeToString(h) }

// AsHex converts v to [Hex]. Values are encoded with their binary encoding.
//
//go:inline
func AsHex(v interface{}) Hex {
	switch v := v.(type) {
	case []byte:
		u := make(Hex, len(v))
		copy(u, v)
		return u
	case [4]byte:
		return Hex(v[:])
	case string:
		return Hex(v)
	case encoding.Value:
		b, err := encoding.MarshalBinary(v)
		if err != nil {
			return Hex(err.Error())
		}
		return Hex(b)
	case fmt.Stringer:
		return Hex(v.String())
	default:
		return Hex(fmt.Sprint(v))
	}
}
