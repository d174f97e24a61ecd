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

package parser

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purple-lang/purple/token"
)

// stage runs the regularizer over src and returns the detokenized output
// of the named pass.
func stage(t *testing.T, src, name string) string {
	t.Helper()
	require.Contains(t, PassNames(), name)
	var out string
	_, err := RegularizeTrace(tokenize(t, src), func(pass string, toks []token.Token) {
		if pass == name {
			out = token.Detokenize(toks)
		}
	})
	require.NoError(t, err)
	return out
}

func regularize(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := Regularize(tokenize(t, src))
	require.NoError(t, err)
	return toks
}

func TestPassNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"decimals", "thunks", "newlines", "bodies", "infix", "groups"}, PassNames())
}

func TestMergeDecimals(t *testing.T) {
	t.Parallel()

	out := mergeDecimals(tokenize(t, "11.0"))
	assertTokens(t, []token.Token{tok(token.Decimal, "11.0")}, out)

	out = mergeDecimals(tokenize(t, "x.y + -2.0"))
	assertTokens(t, []token.Token{
		tok(token.Ident, "x"),
		tok(token.Dot, "."),
		tok(token.Ident, "y"),
		tok(token.Ident, "+"),
		tok(token.Decimal, "-2.0"),
	}, out)

	// a negative fraction is not a decimal
	out = mergeDecimals(tokenize(t, "1.-2"))
	assertTokens(t, []token.Token{
		tok(token.Integer, "1"),
		tok(token.Dot, "."),
		tok(token.Integer, "-2"),
	}, out)

	out = mergeDecimals(tokenize(t, "5.add(1)"))
	assert.Equal(t, "5.add(1)", token.Detokenize(out))
}

func TestMergeDecimalsKeepsPosition(t *testing.T) {
	t.Parallel()

	out := mergeDecimals(tokenize(t, "x 3.25"))
	require.Len(t, out, 2)
	assert.Equal(t, 3, out[1].Pos.Col)
}

func TestNormalizeThunks(t *testing.T) {
	t.Parallel()

	in := tokenize(t, "def thunk:\n 1")
	out := normalizeThunks(in)
	assert.Equal(t, `def thunk():\n1`, token.Detokenize(out))
	// synthesized parens take the position of the colon
	assert.Equal(t, in[2].Pos, out[2].Pos)
	assert.Equal(t, in[2].Pos, out[3].Pos)

	out = normalizeThunks(tokenize(t, "def f(x): 1"))
	assert.Equal(t, "def f(x):1", token.Detokenize(out))
}

func TestReduceNewlines(t *testing.T) {
	t.Parallel()

	out, err := reduceNewlines(tokenize(t, "a\n\n\nb\n\n"))
	require.NoError(t, err)
	assert.Equal(t, `a\nb\n`, token.Detokenize(out))

	// the scanner already drops these; the pass must too
	out, err = reduceNewlines([]token.Token{
		tok(token.LParen, "("),
		tok(token.Integer, "1"),
		tok(token.EOL, "\n"),
		tok(token.EOL, "\n"),
		tok(token.Integer, "2"),
		tok(token.RParen, ")"),
		tok(token.EOL, "\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, `(1 2)\n`, token.Detokenize(out))

	out, err = reduceNewlines(tokenize(t, "{\n\n a \n\n}"))
	require.NoError(t, err)
	assert.Equal(t, `{\na\n}`, token.Detokenize(out))
}

func TestReduceNewlinesUnbalanced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{src: "(a", want: "test.purple:1:1: Unbalanced ()"},
		{src: "a)(", want: "test.purple:1:2: Unbalanced ()"},
		{src: "((a)", want: "test.purple:1:1: Unbalanced ()"},
		{src: "def f: {\n a", want: "test.purple:1:8: Unbalanced {}"},
		{src: "a }", want: "test.purple:1:3: Unbalanced {}"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			_, err := reduceNewlines(tokenize(t, tt.src))
			require.ErrorIs(t, err, ErrGrammar)
			assert.EqualError(t, err, tt.want)

			// the whole pipeline fails the same way
			_, err = Regularize(tokenize(t, tt.src))
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestBraceBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "thunk on next line",
			src:  "def thunk:\n 58 + 2.flip \n",
			want: `def thunk():{58 + 2.flip}\n`,
		},
		{
			name: "same line, closed at end of input",
			src:  "def f(x): x.inc",
			want: "def f(x):{x.inc}",
		},
		{
			name: "already braced",
			src:  "def +(age):\n\n { \n 58 + 2.flip \n 4 }",
			want: `def +(age):{\n58 + 2.flip\n4}`,
		},
		{
			name: "already braced on the same line",
			src:  "def +(String name, Int age): {   58 + 2.flip }",
			want: "def +(String name,Int age):{58 + 2.flip}",
		},
		{
			name: "class bodies are copied",
			src:  "class Person:\n{\n String name \n}\ndef f: 1",
			want: `class Person:{\nString name\n}\ndef f():{1}`,
		},
		{
			name: "one-liner inside braced body",
			src:  "def f(x): {\n def g: 1\n g }",
			want: `def f(x):{\ndef g():{1}\ng}`,
		},
		{
			name: "nested one-liners close together",
			src:  "def f: def g: 1",
			want: "def f():{def g():{1}}",
		},
		{
			name: "several definitions",
			src:  "def a: 1\ndef b: 2\n",
			want: `def a():{1}\ndef b():{2}\n`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, stage(t, tt.src, "bodies"))
		})
	}
}

func TestRewriteInfix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "right associative",
			src:  "a + b + c",
			want: "a.+(b.+(c))",
		},
		{
			name: "grouped left operand",
			src:  "(x + y) + z",
			want: "(x.+(y)).+(z)",
		},
		{
			name: "free call with group",
			src:  "puts 1 + (33 - 2)",
			want: "puts 1.+((33.-(2)))",
		},
		{
			name: "line breaks close wraps",
			src:  "11 + 4\n5 * 6",
			want: `11.+(4)\n5.*(6)`,
		},
		{
			name: "commas close wraps",
			src:  "f.g(a + b, c + d)",
			want: "f.g(a.+(b),c.+(d))",
		},
		{
			name: "postfix call as left operand",
			src:  "2.flip + 3",
			want: "2.flip.+(3)",
		},
		{
			name: "call result as left operand",
			src:  "x.add_to(y) + 1",
			want: "x.add_to(y).+(1)",
		},
		{
			name: "signatures are untouched",
			src:  "def +(String a, b): a + b",
			want: "def +(String a,b):{a.+(b)}",
		},
		{
			name: "class bodies are untouched",
			src:  "class P: {\n String name\n}\nx + 1",
			want: `class P:{\nString name\n}\nx.+(1)`,
		},
		{
			name: "body closes wraps",
			src:  "def hi: puts 1 + (33 - 2)",
			want: "def hi():{puts 1.+((33.-(2)))}",
		},
		{
			name: "literals",
			src:  `"a" + /b/ + 1.5`,
			want: `"a".+(/b/.+(1.5))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, stage(t, tt.src, "infix"))
		})
	}
}

func TestTagGroups(t *testing.T) {
	t.Parallel()

	out := regularize(t, "(x + y) + z")
	assertTokens(t, []token.Token{
		tok(token.GroupLParen, "("),
		tok(token.Ident, "x"),
		tok(token.Dot, "."),
		tok(token.Ident, "+"),
		tok(token.LParen, "("),
		tok(token.Ident, "y"),
		tok(token.RParen, ")"),
		tok(token.GroupRParen, ")"),
		tok(token.Dot, "."),
		tok(token.Ident, "+"),
		tok(token.LParen, "("),
		tok(token.Ident, "z"),
		tok(token.RParen, ")"),
	}, out)

	tests := []struct {
		src  string
		want string
	}{
		{src: "puts 1 + (33 - 2)", want: "puts 1.+(((33.-(2))))"},
		{src: "(11 +\n\n \n 4)", want: "((11.+(4)))"},
		{src: "puts(1 + puts(2))", want: "puts((1.+(puts 2)))"},
		{src: "a.f((b), c)", want: "a.f(b,c)"},
		{src: "(x)", want: "((x))"},
		{src: "def f(x): (x)", want: "def f(x):{((x))}"},
		{src: "def f: 1", want: "def f():{1}"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, token.Detokenize(regularize(t, tt.src)))
		})
	}
}

func TestRegularizeBalanced(t *testing.T) {
	t.Parallel()

	srcs := []string{
		"a + b + c",
		"puts 1 + (33 - 2)",
		"def thunk:\n 58 + 2.flip \n",
		"def +(age):\n\n { \n 58 + 2.flip \n 4 }",
		"class Person: {\n String name \n Int age \n}\ndef +(a, b): a + b",
		"(x + (y * (z - 1))) + f.g(h + i, (j))",
		"def f: def g: (1 + 2) * 3",
	}
	pairs := [][2]token.Kind{
		{token.LParen, token.RParen},
		{token.GroupLParen, token.GroupRParen},
		{token.LBrace, token.RBrace},
	}
	for _, src := range srcs {
		out := regularize(t, src)
		for _, pair := range pairs {
			depth := 0
			for _, tok := range out {
				switch tok.Kind {
				case pair[0]:
					depth++
				case pair[1]:
					depth--
				}
				require.GreaterOrEqual(t, depth, 0, "%q: %s", src, token.Detokenize(out))
			}
			assert.Zero(t, depth, "%q: %s", src, token.Detokenize(out))
		}
		for i := 1; i < len(out); i++ {
			assert.False(t, out[i].Kind == token.EOL && out[i-1].Kind == token.EOL,
				"%q: adjacent EOL in %s", src, token.Detokenize(out))
		}
	}
}

func TestRegularizeDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := tokenize(t, "def f:\n (a + b) + 1.5\n")
	orig := slices.Clone(in)
	_, err := Regularize(in)
	require.NoError(t, err)
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Errorf("input was modified (-want +got):\n%s", diff)
	}
}
