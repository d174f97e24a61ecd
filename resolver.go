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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/purple-lang/purple/ast"
	"github.com/purple-lang/purple/token"
)

// ErrNotFound is returned by resolvers that cannot locate a unit.
var ErrNotFound = errors.New("file not found")

// Resolver locates the units the compiler is asked to compile.
type Resolver interface {
	FindFileByPath(string) (SearchResult, error)
}

// SearchResult is what a Resolver found for a unit.
type SearchResult struct {
	// Only one of the following must be set, based on what the resolver
	// is able to find or produce. If multiple are set, the compiler uses
	// the most processed one: Script, then Tokens, then Source.
	Source io.Reader
	// A regularized token stream, ready to parse.
	Tokens []token.Token
	Script *ast.Script
}

// ResolverFunc is a simple function type that implements Resolver.
type ResolverFunc func(string) (SearchResult, error)

var _ Resolver = ResolverFunc(nil)

// FindFileByPath implements Resolver.
func (f ResolverFunc) FindFileByPath(path string) (SearchResult, error) {
	return f(path)
}

// CompositeResolver is a slice of resolvers, which are consulted in order
// until one can supply a result. If none of the constituent resolvers can
// supply a result, the error returned by the first resolver is returned.
type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

// FindFileByPath implements Resolver.
func (f CompositeResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(f) == 0 {
		return SearchResult{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	var firstErr error
	for _, res := range f {
		r, err := res.FindFileByPath(path)
		if err == nil {
			return r, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// SourceResolver can resolve unit names into source code. Names are joined
// to each of the ImportPaths in turn and passed to the Accessor.
type SourceResolver struct {
	// Directories searched for units. When empty, names are passed to the
	// Accessor as they are.
	ImportPaths []string
	// Opens the named file. If nil, os.Open is used.
	Accessor func(string) (io.ReadCloser, error)
}

var _ Resolver = (*SourceResolver)(nil)

// FindFileByPath implements Resolver.
func (r *SourceResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(r.ImportPaths) == 0 {
		reader, err := r.open(path)
		if err != nil {
			return SearchResult{}, notFound(path, err)
		}
		return SearchResult{Source: reader}, nil
	}

	var e error
	for _, importPath := range r.ImportPaths {
		reader, err := r.open(filepath.Join(importPath, path))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e = err
				continue
			}
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}
	return SearchResult{}, notFound(path, e)
}

func (r *SourceResolver) open(path string) (io.ReadCloser, error) {
	if r.Accessor == nil {
		return os.Open(path)
	}
	return r.Accessor(path)
}

func notFound(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w: %w", path, ErrNotFound, err)
	}
	return err
}

// SourceAccessorFromMap returns a function that can be used as the Accessor
// of a SourceResolver, serving sources from the given map.
func SourceAccessorFromMap(srcs map[string]string) func(string) (io.ReadCloser, error) {
	return func(path string) (io.ReadCloser, error) {
		src, ok := srcs[path]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		return io.NopCloser(strings.NewReader(src)), nil
	}
}
