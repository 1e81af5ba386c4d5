// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads optional project files that set defaults for the
// command line tools. Flags given on the command line always win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gopkg.microglot.org/weft.go/internal/exc"
)

// Names are the project file names searched for by Discover, in order.
var Names = []string{"weft.toml", "weft.yaml", "weft.yml"}

// Formats are the accepted values of the format field.
var Formats = []string{"tree", "json", "proto", "protojson"}

type Config struct {
	// Roots are searched, in order, when opening files.
	Roots []string `toml:"roots" yaml:"roots"`
	// MaxConcurrency bounds the number of files parsed at once. Zero selects
	// the driver default.
	MaxConcurrency int `toml:"max_concurrency" yaml:"max_concurrency"`
	// NonFatal lists diagnostic codes that never fail a compile.
	NonFatal []string `toml:"non_fatal" yaml:"non_fatal"`
	// Format is the default output format of weftc parse.
	Format string `toml:"format" yaml:"format"`

	path string
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Load reads a configuration file. The syntax is chosen by extension: .yaml
// and .yml are YAML and everything else is TOML.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, exc.Wrap(exc.Location{URI: path}, exc.CodeFileNotFound, err)
		}
		return nil, exc.WrapUnknown(exc.Location{URI: path}, err)
	}
	return Parse(path, b)
}

// Parse decodes configuration content. The path selects the syntax and is
// used for error locations.
func Parse(path string, content []byte) (*Config, error) {
	cfg := &Config{path: path}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, exc.Wrap(exc.Location{URI: path}, exc.CodeInvalidConfig, err)
		}
	default:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, exc.Wrap(exc.Location{URI: path}, exc.CodeInvalidConfig, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, exc.Newf(exc.Location{URI: path}, exc.CodeInvalidConfig, "unknown key %s", undecoded[0])
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that decoding alone cannot.
func (c *Config) Validate() error {
	loc := exc.Location{URI: c.path}
	if c.MaxConcurrency < 0 {
		return exc.Newf(loc, exc.CodeInvalidConfig, "max_concurrency must not be negative, got %d", c.MaxConcurrency)
	}
	if c.Format != "" && !slices.Contains(Formats, c.Format) {
		return exc.Newf(loc, exc.CodeInvalidConfig, "unknown format %q", c.Format)
	}
	for _, root := range c.Roots {
		if root == "" {
			return exc.New(loc, exc.CodeInvalidConfig, "roots must not contain empty paths")
		}
	}
	return nil
}

// Discover looks for a project file in dir. It returns an empty
// configuration when none exists.
func Discover(dir string) (*Config, error) {
	for _, name := range Names {
		p := filepath.Join(dir, name)
		stat, err := os.Stat(p)
		if err != nil || stat.IsDir() {
			continue
		}
		return Load(p)
	}
	return &Config{}, nil
}

// ResolveRoots returns Roots made absolute relative to the directory holding
// the configuration file.
func (c *Config) ResolveRoots() []string {
	base := "."
	if c.path != "" {
		base = filepath.Dir(c.path)
	}
	out := make([]string, 0, len(c.Roots))
	for _, root := range c.Roots {
		if !filepath.IsAbs(root) {
			root = filepath.Join(base, root)
		}
		out = append(out, filepath.Clean(root))
	}
	return out
}

func (c *Config) String() string {
	return fmt.Sprintf("roots=%v max_concurrency=%d non_fatal=%v format=%q", c.Roots, c.MaxConcurrency, c.NonFatal, c.Format)
}
