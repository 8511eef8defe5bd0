// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package patcher applies the edits of a patch file to a resource.
package patcher

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/rs/zerolog"
	"github.com/toasterparty/randomprime-sub001/config"
	"github.com/toasterparty/randomprime-sub001/internal/logging"
	"github.com/toasterparty/randomprime-sub001/internal/util/ioutil"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/resource/mapa"
	"github.com/toasterparty/randomprime-sub001/pkg/resource/scly"
	"github.com/toasterparty/randomprime-sub001/pkg/types/encoding"
)

type Session struct {
	config *config.Config
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) *Session {
	return &Session{
		config: cfg,
		logger: logger.With().Str(logging.ModuleField, "patcher").Logger(),
	}
}

// Run reads the input, applies the edits, and writes the output. Nothing is
// written if any edit fails.
func (s *Session) Run(ctx context.Context) (int, error) {
	err := s.config.Validate()
	if err != nil {
		return 0, err
	}

	f, err := ioutil.ReadFile(s.config.Input)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	out, err := s.Apply(ctx, f.Data)
	if err != nil {
		return 0, err
	}

	n, err := ioutil.WriteFile(s.config.Output, out)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Str("input", s.config.Input).Str("output", s.config.Output).Int("size", n).Msg("Patched")
	return n, nil
}

// Apply applies the edits to an encoded resource and returns the encoded
// result. The input is not modified.
func (s *Session) Apply(ctx context.Context, input []byte) (encoding.Bytes, error) {
	kind, v, err := Decode(input)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Stringer("kind", kind).Int("size", len(input)).Msg("Decoded")

	switch v := v.(type) {
	case *scly.Scly:
		if len(s.config.Map) > 0 {
			return nil, errors.BadRequest.With("map edits cannot be applied to a script layer resource")
		}
		err = s.applyScly(ctx, v)
	case *mapa.MapArea:
		if len(s.config.Layers) > 0 {
			return nil, errors.BadRequest.With("layer edits cannot be applied to a map area resource")
		}
		err = s.applyMapa(ctx, v)
	}
	if err != nil {
		return nil, err
	}

	out, err := encoding.MarshalBinary(v)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("encode %v: %w", kind, err)
	}

	if s.config.Verify {
		again, err := Roundtrip(out)
		if err != nil {
			return nil, errors.InternalError.WithCauseAndFormat(err, "patched %v does not decode", kind)
		}
		if !bytes.Equal(out, again) {
			return nil, errors.InternalError.WithFormat("patched %v does not round trip", kind)
		}
	}
	return out, nil
}

func (s *Session) applyScly(ctx context.Context, res *scly.Scly) error {
	for _, p := range s.config.Layers {
		if err := ctx.Err(); err != nil {
			return errors.UnknownError.Wrap(err)
		}

		logger := s.logger.With().Str(logging.ModuleField, "scly").Int("layer", p.Layer).Logger()
		layer, err := res.Layer(p.Layer)
		if err != nil {
			return err
		}

		for _, o := range p.Insert {
			props, err := hex.DecodeString(o.Properties)
			if err != nil {
				return errors.BadRequest.WithFormat("layer %d: object %#x properties: %w", p.Layer, o.InstanceID, err)
			}
			err = layer.InsertObject(scly.NewObject(o.Type, o.InstanceID, props), o.Before)
			if err != nil {
				return errors.UnknownError.WithFormat("layer %d: insert %#x: %w", p.Layer, o.InstanceID, err)
			}
			logger.Debug().Uint32("id", o.InstanceID).Uint32("before", o.Before).Msg("Inserted object")
		}

		for _, c := range p.Connect {
			obj, err := layer.FindObject(c.Object)
			if err != nil {
				return errors.UnknownError.WithFormat("layer %d: connect: %w", p.Layer, err)
			}
			obj.AddConnection(scly.Connection{State: c.State, Message: c.Message, Target: c.Target})
			logger.Debug().Uint32("id", c.Object).Uint32("target", c.Target).Msg("Added connection")
		}

		for _, sp := range p.SetProperty {
			obj, err := layer.FindObject(sp.Object)
			if err != nil {
				return errors.UnknownError.WithFormat("layer %d: set property: %w", p.Layer, err)
			}
			data, err := hex.DecodeString(sp.Data)
			if err != nil {
				return errors.BadRequest.WithFormat("layer %d: object %#x properties: %w", p.Layer, sp.Object, err)
			}
			obj.SetProperties(data)
			logger.Debug().Uint32("id", sp.Object).Int("size", len(data)).Msg("Set properties")
		}
	}
	return nil
}

func (s *Session) applyMapa(ctx context.Context, res *mapa.MapArea) error {
	logger := s.logger.With().Str(logging.ModuleField, "mapa").Logger()
	for _, p := range s.config.Map {
		if err := ctx.Err(); err != nil {
			return errors.UnknownError.Wrap(err)
		}

		var pos encoding.Vec3
		copy(pos[:], p.Position)

		if p.Add {
			err := res.AddObject(&mapa.Object{
				Type:       p.Type,
				Visibility: p.Visibility,
				EditorID:   p.EditorID,
				Transform:  mapa.Identity(pos),
			})
			if err != nil {
				return err
			}
			logger.Debug().Uint32("id", p.EditorID).Msg("Added map object")
			continue
		}

		obj, err := res.FindObject(p.EditorID)
		if err != nil {
			return err
		}
		if p.Visibility != 0 {
			obj.Visibility = p.Visibility
		}
		if p.Position != nil {
			obj.Transform.SetPosition(pos)
		}
		logger.Debug().Uint32("id", p.EditorID).Msg("Updated map object")
	}
	return nil
}
