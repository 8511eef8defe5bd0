// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

// ModuleField is the event field [FilterWriter] rules match against, such as
// "scly" or "patcher".
const ModuleField = "module"

// ParseLogLevel parses a level string of the form "info" or
// "debug;scly=trace;mapa=warn". A rule without a module, or with module "*",
// sets the default. If the string contains rules, the writer is wrapped in a
// [FilterWriter] and the lowest level of any rule is returned.
func ParseLogLevel(s string, w io.Writer) (string, io.Writer, error) {
	if !strings.Contains(s, "=") {
		return s, w, nil
	}

	rules := moduleLevels{
		modules:  map[string]zerolog.Level{},
		fallback: zerolog.Disabled,
	}
	lowest := zerolog.Disabled
	for _, rule := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' }) {
		module, level, err := parseRule(rule)
		if err != nil {
			return "", nil, err
		}

		lowest = min(lowest, level)
		if module == "" || module == "*" {
			rules.fallback = level
		} else {
			rules.modules[module] = level
		}
	}

	return lowest.String(), FilterWriter{Out: w, Predicate: rules.allow}, nil
}

func parseRule(rule string) (string, zerolog.Level, error) {
	module, level, ok := strings.Cut(strings.TrimSpace(rule), "=")
	if !ok {
		module, level = "", module
	}
	lvl, err := zerolog.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return "", 0, errors.BadRequest.WithFormat("log rule %q: %w", rule, err)
	}
	return strings.TrimSpace(module), lvl, nil
}

type moduleLevels struct {
	modules  map[string]zerolog.Level
	fallback zerolog.Level
}

func (m moduleLevels) allow(level zerolog.Level, event map[string]any) bool {
	module, _ := event[ModuleField].(string)
	floor, ok := m.modules[module]
	if !ok {
		floor = m.fallback
	}
	return level >= floor
}

// FilterWriter passes on events for which Predicate returns true and drops
// the rest. Events must be JSON, so it goes in front of any console writer.
type FilterWriter struct {
	Out       io.Writer
	Predicate func(zerolog.Level, map[string]any) bool
}

var _ zerolog.LevelWriter = FilterWriter{}

func (w FilterWriter) Write(p []byte) (n int, err error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w FilterWriter) WriteLevel(level zerolog.Level, p []byte) (n int, err error) {
	var event map[string]any
	// Does not work if zerolog is built with binary_log
	err = json.NewDecoder(bytes.NewReader(p)).Decode(&event)
	if err != nil {
		return 0, errors.EncodingError.WithFormat("decode log event: %w", err)
	}

	if level == zerolog.NoLevel {
		if s, ok := event[zerolog.LevelFieldName].(string); ok {
			level, _ = zerolog.ParseLevel(s)
		}
	}

	if w.Predicate != nil && !w.Predicate(level, event) {
		return len(p), nil
	}
	return w.Out.Write(p)
}
