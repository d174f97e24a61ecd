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
	"strings"
	"testing"

	"github.com/purple-lang/purple/ast"
	"github.com/purple-lang/purple/internal/corpora"
	"github.com/purple-lang/purple/token"
)

// TestCorpus checks the regularized stream, the AST and the error of every
// file in testdata. Set PURPLE_REFRESH to a glob such as '**' to rewrite
// the expected outputs.
func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpora.Corpus{
		Root:      "testdata",
		Refresh:   "PURPLE_REFRESH",
		Extension: "purple",
		Outputs: []corpora.Output{
			{Extension: "tokens"},
			{Extension: "ast"},
			{Extension: "stderr"},
		},
		Test: func(_ *testing.T, path, text string) []string {
			toks, err := Tokenize(path, strings.NewReader(text))
			if err != nil {
				return []string{"", "", err.Error() + "\n"}
			}
			toks, err = Regularize(toks)
			if err != nil {
				return []string{"", "", err.Error() + "\n"}
			}
			regularized := token.Detokenize(toks) + "\n"
			script, err := ParseScript(path, toks)
			if err != nil {
				return []string{regularized, "", err.Error() + "\n"}
			}
			return []string{regularized, ast.Format(script) + "\n", ""}
		},
	}
	corpus.Run(t)
}
