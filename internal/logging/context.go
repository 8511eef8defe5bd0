// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"context"
	"log/slog"

	"golang.org/x/exp/slices"
)

// badKey is the key used for an argument that is not a string key or an
// attribute, matching log/slog.
const badKey = "!BADKEY"

type attrsKey struct{}

// WithAttrs returns a context carrying the attributes of ctx plus attrs.
// Loggers created by [NewSlogger] add them to every record logged with the
// context, so a worker can tag its records with the file it is patching.
func WithAttrs(ctx context.Context, attrs []slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}

	// Clip so contexts derived from the same parent never share storage
	parent := slices.Clip(Attrs(ctx))
	return context.WithValue(ctx, attrsKey{}, append(parent, attrs...))
}

// Attrs returns the attributes carried by ctx.
func Attrs(ctx context.Context) []slog.Attr {
	v, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return v
}

// With is [WithAttrs] for alternating key-value arguments, as accepted by
// [slog.Logger.Info].
func With(ctx context.Context, args ...any) context.Context {
	return WithAttrs(ctx, argsToAttrs(args))
}

func argsToAttrs(args []any) []slog.Attr {
	var attrs []slog.Attr
	for len(args) > 0 {
		switch key := args[0].(type) {
		case slog.Attr:
			attrs = append(attrs, key)
			args = args[1:]
		case string:
			if len(args) == 1 {
				attrs = append(attrs, slog.String(badKey, key))
				return attrs
			}
			attrs = append(attrs, slog.Any(key, args[1]))
			args = args[2:]
		default:
			attrs = append(attrs, slog.Any(badKey, key))
			args = args[1:]
		}
	}
	return attrs
}
