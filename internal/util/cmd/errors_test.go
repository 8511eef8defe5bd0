// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cmdutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

func capture(t *testing.T) (*bytes.Buffer, *int) {
	buf := new(bytes.Buffer)
	code := -1
	oldErr, oldExit := stderr, exit
	stderr, exit = buf, func(c int) { code = c }
	t.Cleanup(func() { stderr, exit = oldErr, oldExit })
	return buf, &code
}

func TestCheck(t *testing.T) {
	buf, code := capture(t)
	Check(nil)
	require.Equal(t, -1, *code)
	require.Empty(t, buf.String())

	Check(errors.MalformedInput.With("bad magic"))
	require.Equal(t, 2, *code)
	require.Equal(t, "Error: bad magic\n", buf.String())
}

func TestCheckf(t *testing.T) {
	buf, code := capture(t)
	Checkf(errors.Conflict.With("duplicate id"), "patch %s", "a.pak")
	require.Equal(t, 1, *code)
	require.Equal(t, "Error: patch a.pak: duplicate id\n", buf.String())
}

func TestWarnf(t *testing.T) {
	buf, code := capture(t)
	Warnf("%d objects skipped", 3)
	require.Equal(t, -1, *code)
	require.Equal(t, "WARNING: 3 objects skipped\n", buf.String())
}
