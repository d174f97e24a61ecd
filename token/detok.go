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

package token

import "strings"

// Detokenize reconstructs printable source from a token stream. It is meant
// for diagnostics only.
//
// Grouping parens print as (( and )), so they can be told apart from call
// parens, and line breaks print as a visible \n. Adjacent word tokens are
// separated by a single space; nothing else is.
func Detokenize(tokens []Token) string {
	var out strings.Builder
	for i, tok := range tokens {
		if i > 0 && tok.Kind.IsWord() && tokens[i-1].Kind.IsWord() {
			out.WriteByte(' ')
		}
		switch tok.Kind {
		case GroupLParen:
			out.WriteString("((")
		case GroupRParen:
			out.WriteString("))")
		default:
			out.WriteString(tok.PrintableText())
		}
	}
	return out.String()
}
