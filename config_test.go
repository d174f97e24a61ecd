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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	cfg, err := DecodeConfig(strings.NewReader(`
sources = ["src/**/*.purple", "main.purple"]
import_paths = ["src"]
max_parallelism = 3
retain_tokens = true
`))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Sources:        []string{"src/**/*.purple", "main.purple"},
		ImportPaths:    []string{"src"},
		MaxParallelism: 3,
		RetainTokens:   true,
	}, cfg)
}

func TestDecodeConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := DecodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultSources}, cfg.Sources)
	assert.Zero(t, cfg.MaxParallelism)
}

func TestDecodeConfigErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"syntax":   `sources = [`,
		"unknown":  `source = ["a"]`,
		"glob":     `sources = ["src/[a"]`,
		"negative": `max_parallelism = -1`,
		"type":     `retain_tokens = "yes"`,
	}
	for name, src := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeConfig(strings.NewReader(src))
			assert.Error(t, err)
		})
	}

	_, err := DecodeConfig(strings.NewReader(`source = ["a"]`))
	assert.EqualError(t, err, "unknown config keys: source")
}

func TestConfigFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"main.purple":          {Data: []byte("1\n")},
		"src/a.purple":         {Data: []byte("2\n")},
		"src/nested/b.purple":  {Data: []byte("3\n")},
		"src/notes.txt":        {Data: []byte("no")},
		"src/dir.purple/x.txt": {Data: []byte("no")},
	}
	cfg := &Config{Sources: []string{"src/**/*.purple", "*.purple", "main.purple"}}
	files, err := cfg.Files(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.purple", "src/a.purple", "src/nested/b.purple"}, files)
}

func TestLoadConfigAndCompile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	write("purple.toml", "sources = [\"src/**/*.purple\"]\nimport_paths = [\"lib\"]\nretain_tokens = true\n")
	write("src/main.purple", "puts(1)\n")
	write("src/util/math.purple", "def sq(x): x * x\n")

	cfg, err := LoadConfig(filepath.Join(dir, "purple.toml"))
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Root)

	files, err := cfg.Files(os.DirFS(cfg.Root))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.purple", "src/util/math.purple"}, files)

	comp := cfg.Compiler()
	assert.True(t, comp.RetainTokens)
	results, err := comp.Compile(context.Background(), files...)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0].Tokens)
	assert.Len(t, results[1].Script.Statements, 1)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
