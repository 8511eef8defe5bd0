// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ioutil

import (
	"os"
	"path/filepath"

	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

// File is the contents of a file opened with [ReadFile].
type File struct {
	Path string
	Data []byte

	close func() error
}

// Close releases the file. Data must not be used afterwards.
func (f *File) Close() error {
	if f.close == nil {
		return nil
	}
	err := f.close()
	f.close, f.Data = nil, nil
	return err
}

// WriteFile writes a value to a temporary file next to path and renames it
// into place, so path is never left partially written.
func WriteFile(path string, v encoding.Value) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, errors.UnknownError.WithFormat("create %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := encoding.Write(encoding.NewWriter(tmp), v)
	if err != nil {
		_ = tmp.Close()
		return 0, errors.UnknownError.WithFormat("write %s: %w", path, err)
	}

	err = tmp.Close()
	if err != nil {
		return 0, errors.UnknownError.WithFormat("write %s: %w", path, err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return 0, errors.UnknownError.WithFormat("rename %s: %w", path, err)
	}
	return n, nil
}
