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

package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/purple-lang/purple/token"
)

func call(name string, args ...Node) *Call {
	return &Call{Name: name, Args: args}
}

func variable(name string) *Variable {
	return &Variable{Name: name}
}

func integer(v int64) *Integer {
	return &Integer{Value: v}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "right associative infix",
			node: call("+", variable("a"), call("+", variable("b"), variable("c"))),
			want: "(+ a (+ b c))",
		},
		{
			name: "decimal keeps fraction",
			node: &Decimal{Value: 11},
			want: "11.0",
		},
		{
			name: "decimal",
			node: &Decimal{Value: 3.25},
			want: "3.25",
		},
		{
			name: "literals",
			node: call("match", &String{Value: "abc"}, &Regex{Pattern: "a.c"}),
			want: `(match "abc" /a.c/)`,
		},
		{
			name: "thunk",
			node: &FunctionDef{Name: "thunk", Body: call("+", integer(58), call("flip", integer(2)))},
			want: "(def thunk () (+ 58 (flip 2)))",
		},
		{
			name: "do block",
			node: &FunctionDef{
				Name:   "+",
				Params: []*Argument{{Name: "age", Type: UnknownType}, {Name: "s", Type: "String"}},
				Body:   NewDoBlock(token.Pos{}, []Node{variable("age"), integer(4)}),
			},
			want: "(def + (age s:String) (do age 4))",
		},
		{
			name: "class",
			node: &ClassDef{Name: "Person", Fields: []*FieldDef{
				{Name: "name", Type: &TypeRef{Name: "String"}},
				{Name: "age", Type: &TypeRef{Name: "Int"}},
			}},
			want: "(class Person name:String age:Int)",
		},
		{
			name: "script",
			node: &Script{Name: "x.purple", Statements: []Node{
				&Module{Name: "a.b"},
				&Require{Name: "lib/c.purple", IsPath: true},
				&Require{Name: "d"},
			}},
			want: "(module a.b)\n(require \"lib/c.purple\")\n(require d)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Format(tt.node))
		})
	}
}

func TestDoBlockIsCall(t *testing.T) {
	t.Parallel()

	pos := token.Pos{Filename: "f", Line: 2, Col: 3}
	block := NewDoBlock(pos, []Node{integer(1), integer(2)})
	assert.Equal(t, DoName, block.Name)
	assert.Len(t, block.Statements(), 2)
	assert.Equal(t, pos, block.Position())

	var n Node = block
	_, isCall := n.(*Call)
	assert.False(t, isCall, "do-blocks are dispatched on their own type")
}

func TestDump(t *testing.T) {
	t.Parallel()

	fn := &FunctionDef{
		Pos:    token.Pos{Filename: "f.purple", Line: 1, Col: 1},
		Name:   "inc",
		Params: []*Argument{{Name: "n", Type: "Int"}},
		Body:   call("+", variable("n"), integer(1)),
	}

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, fn, true))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "def", got["kind"])
	assert.Equal(t, "inc", got["name"])
	assert.Equal(t, "f.purple:1:1", got["at"])

	params, ok := got["params"].([]any)
	require.True(t, ok)
	require.Len(t, params, 1)
	assert.Equal(t, map[string]any{"kind": "argument", "name": "n", "type": "Int"}, params[0])

	body, ok := got["body"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "call", body["kind"])
	args, ok := body["args"].([]any)
	require.True(t, ok)
	require.Len(t, args, 2)
	assert.Equal(t, map[string]any{"kind": "integer", "value": 1}, args[1])
}
