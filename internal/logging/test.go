// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type TestLogger struct {
	Test testing.TB
}

var _ io.Writer = (*TestLogger)(nil)

func (l *TestLogger) Write(b []byte) (int, error) {
	s := string(b)
	if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
	}
	l.Test.Log(s)
	return len(b), nil
}

// NewTestLogger returns a plain-text debug logger that writes through
// [testing.TB.Log].
func NewTestLogger(t testing.TB) zerolog.Logger {
	return NewTestZeroLogger(t, LogFormatPlain)
}

func NewTestZeroLogger(t testing.TB, format string) zerolog.Logger {
	w, err := NewConsoleWriterWith(&TestLogger{Test: t}, format)
	if err != nil {
		t.Fatalf("Unsupported log format: %s", format)
	}
	return zerolog.New(w).Level(zerolog.DebugLevel)
}
