// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

//go:build no_mmap

package ioutil

import (
	"os"

	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

func ReadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound.WithFormat("read %s: %w", path, err)
	}
	return &File{Path: path, Data: b, close: func() error { return nil }}, nil
}
