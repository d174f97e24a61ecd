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
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/purple-lang/purple/ast"
	"github.com/purple-lang/purple/parser"
	"github.com/purple-lang/purple/reporter"
	"github.com/purple-lang/purple/symbols"
	"github.com/purple-lang/purple/token"
)

// Compiler turns Purple source units into syntax trees.
//
// Each unit goes through three steps:
//  1. Scanning the source into tokens.
//  2. Regularizing the token stream.
//  3. Parsing the regularized stream into an *ast.Script.
//
// A resolver may supply a unit already regularized or already parsed, in
// which case the corresponding steps are skipped.
type Compiler struct {
	// Resolves unit names into source code, tokens or syntax trees. This
	// field is the only required field.
	Resolver Resolver
	// The maximum number of units to compile at once. If unspecified or
	// set to a non-positive value, then min(runtime.NumCPU(),
	// runtime.GOMAXPROCS(-1)) will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the compilation after encountering any
	// errors and ignores all warnings.
	Reporter reporter.Reporter
	// If true, each result keeps the regularized token stream its script
	// was parsed from.
	RetainTokens bool
	// If non-nil, every successfully compiled unit is added to this table.
	Symbols *symbols.Table
}

// Result is the outcome of compiling one unit.
type Result struct {
	Name string
	// The regularized token stream. Only set when the compiler was asked
	// to retain tokens.
	Tokens []token.Token
	Script *ast.Script
}

// Compile compiles the given units. Results are returned in the same order
// as the given names; a name given more than once is only compiled once.
//
// If the reporter swallows errors, Compile keeps going so every broken unit
// gets reported, and then fails with reporter.ErrInvalidSource.
func (c *Compiler) Compile(ctx context.Context, files ...string) ([]*Result, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if c.Resolver == nil {
		return nil, errors.New("compiler has no resolver")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	e := executor{
		c:       c,
		h:       reporter.NewHandler(c.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		cancel:  cancel,
		results: map[string]*result{},
	}

	pending := make([]*result, len(files))
	for i, f := range files {
		pending[i] = e.compile(ctx, f)
	}

	results := make([]*Result, len(files))
	for i, r := range pending {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, e.failure(ctx.Err())
		}
		if r.err != nil {
			return nil, e.failure(r.err)
		}
		results[i] = r.res
	}

	if err := e.h.Error(); err != nil {
		return nil, err
	}
	return results, nil
}

type result struct {
	ready chan struct{}
	res   *Result
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(res *Result) {
	r.res = res
	close(r.ready)
}

type executor struct {
	c      *Compiler
	h      *reporter.Handler
	s      *semaphore.Weighted
	cancel context.CancelFunc

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) compile(ctx context.Context, file string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[file]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[file] = r
	go func() {
		e.doCompile(ctx, file, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, file string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	sr, err := e.c.Resolver.FindFileByPath(file)
	if err != nil {
		r.fail(e.abort(err))
		return
	}
	defer func() {
		// if the result included a source, don't leave it open
		if c, ok := sr.Source.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	res, err := e.asResult(file, sr)
	if err != nil {
		if err := e.h.HandleError(err); err != nil {
			e.cancel()
			r.fail(err)
			return
		}
		// The reporter swallowed the error. The unit still yields no
		// script; Compile reports ErrInvalidSource once all units finish.
		r.complete(&Result{Name: file})
		return
	}
	e.lint(res.Script)
	if e.c.Symbols != nil {
		e.c.Symbols.Add(file, res.Script)
	}
	r.complete(res)
}

// abort records err as the reason compilation failed and stops the
// remaining units.
func (e *executor) abort(err error) error {
	if reported := e.h.HandleError(err); reported != nil {
		err = reported
	}
	e.cancel()
	return err
}

// failure returns the error that stopped compilation. Units that were
// cancelled because another unit failed report the other unit's error.
func (e *executor) failure(err error) error {
	if first := e.h.ReporterError(); first != nil {
		return first
	}
	return err
}

func (e *executor) asResult(name string, sr SearchResult) (*Result, error) {
	res := &Result{Name: name}
	switch {
	case sr.Script != nil:
		if sr.Script.Name != name {
			return nil, fmt.Errorf("search result for %q returned script for %q", name, sr.Script.Name)
		}
		res.Script = sr.Script
		return res, nil

	case sr.Tokens != nil:
		if e.c.RetainTokens {
			res.Tokens = sr.Tokens
		}
		script, err := parser.ParseScript(name, sr.Tokens)
		if err != nil {
			return nil, err
		}
		res.Script = script
		return res, nil

	case sr.Source != nil:
		tokens, err := parser.Tokenize(name, sr.Source)
		if err != nil {
			return nil, err
		}
		tokens, err = parser.Regularize(tokens)
		if err != nil {
			return nil, err
		}
		if e.c.RetainTokens {
			res.Tokens = tokens
		}
		script, err := parser.ParseScript(name, tokens)
		if err != nil {
			return nil, err
		}
		res.Script = script
		return res, nil
	}
	return nil, fmt.Errorf("search result for %q is empty", name)
}

// lint reports warnings for constructs that parse but are likely mistakes.
func (e *executor) lint(script *ast.Script) {
	var module *ast.Module
	for _, stmt := range script.Statements {
		m, ok := stmt.(*ast.Module)
		if !ok {
			continue
		}
		if module != nil {
			e.h.HandleWarning(m.Pos, fmt.Errorf("module %s already declared as %s at %v", m.Name, module.Name, module.Pos))
			continue
		}
		module = m
	}
}
