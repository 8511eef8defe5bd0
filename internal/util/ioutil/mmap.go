// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

//go:build !no_mmap

package ioutil

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

// ReadFile maps a file read-only. The returned data must not be modified and
// must not be used after the file is closed.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NotFound.WithFormat("open %s: %w", path, err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.UnknownError.WithFormat("stat %s: %w", path, err)
	}

	// Empty files cannot be mapped
	if st.Size() == 0 {
		return &File{Path: path, close: f.Close}, nil
	}

	g, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, errors.UnknownError.WithFormat("map %s: %w", path, err)
	}

	return &File{
		Path: path,
		Data: g,
		close: func() error {
			err := g.Unmap()
			if e := f.Close(); err == nil {
				err = e
			}
			return err
		},
	}, nil
}
