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

package symbols

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purple-lang/purple/ast"
	"github.com/purple-lang/purple/parser"
)

func parseScript(t *testing.T, name, src string) *ast.Script {
	t.Helper()
	script, err := parser.ParseSource(name, strings.NewReader(src))
	require.NoError(t, err)
	return script
}

func TestTableAdd(t *testing.T) {
	t.Parallel()

	var table Table
	table.Add("a.purple", parseScript(t, "a.purple",
		"module app\nclass P: {\n Int x\n}\ndef f(a): a + 1\ndef g(x): {\n x.inc\n puts(x)\n}\n"))

	var defs []string
	for def := range table.Definitions() {
		defs = append(defs, def.Kind.String()+":"+def.Name)
		assert.Equal(t, "app", def.Module)
		assert.Equal(t, "a.purple", def.Unit)
	}
	assert.Equal(t, []string{"class:P", "function:f", "function:g"}, defs)
	assert.Equal(t, 3, table.Len())

	var refs []string
	for ref := range table.References() {
		refs = append(refs, ref.Name)
	}
	assert.Equal(t, []string{"+", "inc", "puts"}, refs)

	f := table.Lookup("f")
	require.Len(t, f, 1)
	assert.Equal(t, KindFunction, f[0].Kind)
	assert.Equal(t, 5, f[0].Pos.Line)
	def, ok := f[0].Node.(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "f", def.Name)

	assert.Empty(t, table.Lookup("missing"))
	assert.Empty(t, table.ReferencesTo("missing"))
}

func TestTableMultipleUnits(t *testing.T) {
	t.Parallel()

	var table Table
	table.Add("one.purple", parseScript(t, "one.purple", "def f: 1\nputs(2)\n"))
	table.Add("two.purple", parseScript(t, "two.purple", "module two\ndef f: 2\nputs(3)\n"))

	defs := table.Lookup("f")
	require.Len(t, defs, 2)
	assert.Equal(t, "one.purple", defs[0].Unit)
	assert.Empty(t, defs[0].Module)
	assert.Equal(t, "two.purple", defs[1].Unit)
	assert.Equal(t, "two", defs[1].Module)

	refs := table.ReferencesTo("puts")
	require.Len(t, refs, 2)
	assert.Equal(t, "one.purple", refs[0].Unit)
	assert.Equal(t, "two.purple", refs[1].Unit)
	assert.Equal(t, 1, table.Len())
}

func TestTableEarlyStop(t *testing.T) {
	t.Parallel()

	var table Table
	table.Add("u", parseScript(t, "u", "def a: 1\ndef b: 2\ndef c: 3\n"))
	var names []string
	for def := range table.Definitions() {
		names = append(names, def.Name)
		if def.Name == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestTableConcurrentAdd(t *testing.T) {
	t.Parallel()

	var table Table
	script := parseScript(t, "c", "def f: 1\n")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Add("c", script)
		}()
	}
	wg.Wait()
	assert.Len(t, table.Lookup("f"), 8)
}
