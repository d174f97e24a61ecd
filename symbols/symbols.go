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

// Package symbols indexes the top-level definitions of compiled Purple
// scripts and the calls made from them.
//
// The index does not resolve or validate anything: a call to a name that
// is defined nowhere is recorded like any other.
package symbols

import (
	"iter"
	"sync"

	"github.com/tidwall/btree"

	"github.com/purple-lang/purple/ast"
	"github.com/purple-lang/purple/token"
	"github.com/purple-lang/purple/walk"
)

// Kind is the kind of a definition.
type Kind int

const (
	KindFunction Kind = iota + 1
	KindClass
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

// Definition is a top-level function or class definition.
type Definition struct {
	Name string
	Kind Kind
	// The unit (usually a file name) the definition was found in, and the
	// module that unit declared, if any.
	Unit, Module string
	Pos          token.Pos
	Node         ast.Node
}

// Reference is a call found anywhere in a unit.
type Reference struct {
	Name string
	Unit string
	Pos  token.Pos
}

// Table is an ordered index of definitions and references. The zero value
// is an empty table ready to use. A Table is safe for concurrent use.
type Table struct {
	mu   sync.RWMutex
	defs btree.Map[string, []Definition]
	refs btree.Map[string, []Reference]
}

// Add indexes the given script under the given unit name.
func (t *Table) Add(unit string, script *ast.Script) {
	var module string
	var defs []Definition
	for _, stmt := range script.Statements {
		switch stmt := stmt.(type) {
		case *ast.Module:
			if module == "" {
				module = stmt.Name
			}
		case *ast.FunctionDef:
			defs = append(defs, Definition{Name: stmt.Name, Kind: KindFunction, Unit: unit, Pos: stmt.Pos, Node: stmt})
		case *ast.ClassDef:
			defs = append(defs, Definition{Name: stmt.Name, Kind: KindClass, Unit: unit, Pos: stmt.Pos, Node: stmt})
		}
	}
	calls := walk.Calls(script)

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, def := range defs {
		def.Module = module
		existing, _ := t.defs.Get(def.Name)
		t.defs.Set(def.Name, append(existing, def))
	}
	for _, call := range calls {
		existing, _ := t.refs.Get(call.Name)
		t.refs.Set(call.Name, append(existing, Reference{Name: call.Name, Unit: unit, Pos: call.Pos}))
	}
}

// Lookup returns the definitions of the given name, in the order they
// were added.
func (t *Table) Lookup(name string) []Definition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	defs, _ := t.defs.Get(name)
	return append([]Definition(nil), defs...)
}

// ReferencesTo returns the calls to the given name, in the order they were
// added.
func (t *Table) ReferencesTo(name string) []Reference {
	t.mu.RLock()
	defer t.mu.RUnlock()
	refs, _ := t.refs.Get(name)
	return append([]Reference(nil), refs...)
}

// Definitions returns an iterator over all definitions, ordered by name.
// The table must not be modified while iterating.
func (t *Table) Definitions() iter.Seq[Definition] {
	return scan(t, &t.defs)
}

// References returns an iterator over all references, ordered by name.
// The table must not be modified while iterating.
func (t *Table) References() iter.Seq[Reference] {
	return scan(t, &t.refs)
}

// Len returns the number of distinct defined names.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.defs.Len()
}

func scan[V any](t *Table, m *btree.Map[string, []V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		t.mu.RLock()
		defer t.mu.RUnlock()
		m.Scan(func(_ string, values []V) bool {
			for _, v := range values {
				if !yield(v) {
					return false
				}
			}
			return true
		})
	}
}
