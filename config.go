// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package purple

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSources is the source glob used when a project file names none.
const DefaultSources = "**/*.purple"

// Config describes a Purple project, as read from a TOML project file:
//
//	sources = ["src/**/*.purple"]
//	import_paths = ["src", "lib"]
//	max_parallelism = 4
//	retain_tokens = false
type Config struct {
	// Globs selecting the units to compile, relative to Root.
	Sources []string `toml:"sources"`
	// Directories, relative to Root, searched when resolving units.
	ImportPaths    []string `toml:"import_paths"`
	MaxParallelism int      `toml:"max_parallelism"`
	RetainTokens   bool     `toml:"retain_tokens"`

	// The directory relative paths are resolved against. LoadConfig sets it
	// to the directory containing the project file.
	Root string `toml:"-"`
}

// LoadConfig reads the project file at the given path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// DecodeConfig reads a project file. Unknown keys and malformed source
// globs are errors. Root is left empty.
func DecodeConfig(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = []string{DefaultSources}
	}
	for _, pattern := range cfg.Sources {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid source glob %q", pattern)
		}
	}
	if cfg.MaxParallelism < 0 {
		return nil, fmt.Errorf("max_parallelism must not be negative, got %d", cfg.MaxParallelism)
	}
	return &cfg, nil
}

// Files returns the names of all files in fsys matched by the source globs,
// sorted and without duplicates.
func (c *Config) Files(fsys fs.FS) ([]string, error) {
	var files []string
	for _, pattern := range c.Sources {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("source glob %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// Compiler returns a compiler that reads units from the configured import
// paths and then from Root, so the names returned by Files always resolve.
func (c *Config) Compiler() *Compiler {
	root := c.Root
	if root == "" {
		root = "."
	}
	importPaths := make([]string, 0, len(c.ImportPaths)+1)
	for _, p := range c.ImportPaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		importPaths = append(importPaths, p)
	}
	importPaths = append(importPaths, root)
	return &Compiler{
		Resolver:       &SourceResolver{ImportPaths: importPaths},
		MaxParallelism: c.MaxParallelism,
		RetainTokens:   c.RetainTokens,
	}
}
