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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestTokens(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.purple": "1 + 2\n"})
	stdout, _, err := run(t, "tokens", filepath.Join(dir, "a.purple"))
	require.NoError(t, err)
	assert.Equal(t, "raw        1 + 2\\n\nregular    1.+(2)\\n\n", stdout)

	stdout, _, err = run(t, "tokens", "-v", filepath.Join(dir, "a.purple"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "infix      1.+(2)\\n\n")
	assert.Contains(t, stdout, "decimals   1 + 2\\n\n")
}

func TestTokensError(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"bad.purple": "puts (1 + 2\n"})
	_, stderr, err := run(t, "tokens", filepath.Join(dir, "bad.purple"))
	require.Error(t, err)
	assert.Contains(t, stderr, "Unbalanced ()")
	assert.Contains(t, stderr, "   1 | puts (1 + 2\n")
}

func TestParse(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.purple": "a + b * c\ndef sq(x): x * x\n"})
	stdout, _, err := run(t, "parse", filepath.Join(dir, "a.purple"))
	require.NoError(t, err)
	assert.Equal(t, "(+ a (* b c))\n(def sq (x) (* x x))\n", stdout)

	stdout, _, err = run(t, "parse", "--yaml", "--positions", filepath.Join(dir, "a.purple"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "script", doc["kind"])
	stmts, ok := doc["statements"].([]any)
	require.True(t, ok)
	assert.Len(t, stmts, 2)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"purple.toml":     "sources = [\"src/**/*.purple\"]\n",
		"src/good.purple": "puts(1)\n",
		"src/bad.purple":  "x.y\n11.(2)\n",
	})
	config := filepath.Join(dir, "purple.toml")

	_, stderr, err := run(t, "--config", config, "check")
	require.EqualError(t, err, "1 errors in 2 files")
	assert.Contains(t, stderr, "error: src/bad.purple:2:3: Expected function name after .\n   2 | 11.(2)\n     |   ^\n")

	_, _, err = run(t, "--config", config, "check", "src/good.purple")
	assert.NoError(t, err)

	_, _, err = run(t, "--config", filepath.Join(dir, "missing.toml"), "check")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSymbols(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"purple.toml": "",
		"a.purple":    "module app\ndef f(a): a + 1\n",
		"b.purple":    "class P: {\n Int x\n}\nputs(2)\n",
	})
	stdout, _, err := run(t, "--config", filepath.Join(dir, "purple.toml"), "symbols", "--refs")
	require.NoError(t, err)
	assert.Equal(t,
		"class    P                    -            b.purple:1:1\n"+
			"function f                    app          a.purple:2:1\n"+
			"call     +                    -            a.purple:2:13\n"+
			"call     puts                 -            b.purple:4:1\n",
		stdout)
}
