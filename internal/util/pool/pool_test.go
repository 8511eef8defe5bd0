// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package pool_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toasterparty/randomprime-sub001/internal/util/pool"
)

func TestPoolReset(t *testing.T) {
	p := pool.New[bytes.Buffer](func(b *bytes.Buffer) { b.Reset() })

	buf := p.Get()
	require.NotNil(t, buf)
	buf.WriteString("foo")
	p.Put(buf)

	// Whatever comes back, pooled or new, must be empty
	require.Zero(t, p.Get().Len())
}
