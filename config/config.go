// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
	"github.com/toasterparty/randomprime-sub001/internal/logging"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

// DefaultFile is the name of the patch file the CLI looks for.
const DefaultFile = "patch.toml"

// LogLevel defines the default and per-module log level.
type LogLevel struct {
	Default string
	Modules [][2]string
}

// Parse parses a string such as "error;scly=info" into a LogLevel.
func (l LogLevel) Parse(s string) LogLevel {
	for _, s := range strings.Split(s, ";") {
		s := strings.SplitN(s, "=", 2)
		if len(s) == 1 {
			l.Default = s[0]
		} else {
			l.Modules = append(l.Modules, *(*[2]string)(s))
		}
	}
	return l
}

// SetDefault sets the default log level.
func (l LogLevel) SetDefault(level string) LogLevel {
	l.Default = level
	return l
}

// SetModule sets the log level for a module.
func (l LogLevel) SetModule(module, level string) LogLevel {
	l.Modules = append(l.Modules, [2]string{module, level})
	return l
}

// String converts the log level into a string, for example
// "error;scly=debug".
func (l LogLevel) String() string {
	s := new(strings.Builder)
	s.WriteString(l.Default)
	for _, m := range l.Modules {
		fmt.Fprintf(s, ";%s=%s", m[0], m[1])
	}
	return s.String()
}

var DefaultLogLevels = LogLevel{}.
	SetDefault("info").
	SetModule("difflist", "warn").
	String()

type Config struct {
	Log    Log          `toml:"log" mapstructure:"log"`
	Input  string       `toml:"input" mapstructure:"input"`
	Output string       `toml:"output" mapstructure:"output"`
	Verify bool         `toml:"verify" mapstructure:"verify"`
	Layers []LayerPatch `toml:"layers,omitempty" mapstructure:"layers"`
	Map    []MapPatch   `toml:"map,omitempty" mapstructure:"map"`
}

type Log struct {
	Format string `toml:"format" mapstructure:"format"`
	Level  string `toml:"level" mapstructure:"level"`
}

// LayerPatch is a set of edits to one script layer.
type LayerPatch struct {
	Layer       int               `toml:"layer" mapstructure:"layer"`
	Insert      []ObjectInsert    `toml:"insert,omitempty" mapstructure:"insert"`
	Connect     []ConnectionPatch `toml:"connect,omitempty" mapstructure:"connect"`
	SetProperty []PropertyPatch   `toml:"set-property,omitempty" mapstructure:"set-property"`
}

// ObjectInsert inserts a new object before the object with instance ID
// Before, or at the end of the layer if Before is zero.
type ObjectInsert struct {
	Type       uint8  `toml:"type" mapstructure:"type"`
	InstanceID uint32 `toml:"id" mapstructure:"id"`
	Before     uint32 `toml:"before,omitempty" mapstructure:"before"`
	Properties string `toml:"properties,omitempty" mapstructure:"properties"`
}

// ConnectionPatch appends a connection to an object.
type ConnectionPatch struct {
	Object  uint32 `toml:"object" mapstructure:"object"`
	State   uint32 `toml:"state" mapstructure:"state"`
	Message uint32 `toml:"message" mapstructure:"message"`
	Target  uint32 `toml:"target" mapstructure:"target"`
}

// PropertyPatch replaces the property data of an object.
type PropertyPatch struct {
	Object uint32 `toml:"object" mapstructure:"object"`
	Data   string `toml:"data" mapstructure:"data"`
}

// MapPatch edits or adds a map object. If Add is set, a new object is added
// at Position, otherwise the object with the editor ID is updated.
type MapPatch struct {
	EditorID   uint32    `toml:"editor-id" mapstructure:"editor-id"`
	Add        bool      `toml:"add,omitempty" mapstructure:"add"`
	Type       uint32    `toml:"type,omitempty" mapstructure:"type"`
	Visibility uint32    `toml:"visibility,omitempty" mapstructure:"visibility"`
	Position   []float32 `toml:"position,omitempty" mapstructure:"position"`
}

func Default() *Config {
	c := new(Config)
	c.Log.Format = logging.LogFormatPlain
	c.Log.Level = DefaultLogLevels
	c.Verify = true
	return c
}

// Validate checks everything that can be checked without the input file.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.BadRequest.With("missing input")
	}
	if c.Output == "" {
		return errors.BadRequest.With("missing output")
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return errors.BadRequest.With("output would overwrite the input")
	}
	if _, _, err := logging.ParseLogLevel(c.Log.Level, os.Stderr); err != nil {
		return errors.BadRequest.WithFormat("log level: %w", err)
	}

	for i, l := range c.Layers {
		if l.Layer < 0 {
			return errors.BadRequest.WithFormat("layers[%d]: negative layer index", i)
		}
		for j, o := range l.Insert {
			if _, err := hex.DecodeString(o.Properties); err != nil {
				return errors.BadRequest.WithFormat("layers[%d].insert[%d]: properties: %w", i, j, err)
			}
		}
		for j, p := range l.SetProperty {
			if _, err := hex.DecodeString(p.Data); err != nil {
				return errors.BadRequest.WithFormat("layers[%d].set-property[%d]: data: %w", i, j, err)
			}
		}
	}

	for i, m := range c.Map {
		if m.Position != nil && len(m.Position) != 3 {
			return errors.BadRequest.WithFormat("map[%d]: position must have 3 components, got %d", i, len(m.Position))
		}
		if m.Add && m.Position == nil {
			return errors.BadRequest.WithFormat("map[%d]: a new object needs a position", i)
		}
	}
	return nil
}

// Load reads a patch file. Relative input and output paths are resolved
// against the directory of the file.
func Load(file string) (*Config, error) {
	c := Default()
	err := load(file, c)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(file)
	c.Input = MakeAbsolute(dir, c.Input)
	c.Output = MakeAbsolute(dir, c.Output)
	return c, nil
}

// Store writes a patch file.
func Store(file string, c *Config) error {
	f, err := os.Create(file)
	if err != nil {
		return errors.UnknownError.WithFormat("create %s: %w", file, err)
	}
	defer f.Close()

	err = toml.NewEncoder(f).Encode(c)
	if err != nil {
		return errors.EncodingError.WithFormat("encode %s: %w", file, err)
	}
	return nil
}

func MakeAbsolute(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func load(file string, c interface{}) error {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("toml")
	err := v.ReadInConfig()
	if err != nil {
		return errors.BadRequest.WithFormat("read %s: %w", file, err)
	}

	err = v.Unmarshal(c)
	if err != nil {
		return errors.BadRequest.WithFormat("unmarshal %s: %w", file, err)
	}

	return nil
}
