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

// keywords maps reserved words to their token kinds. It is never written to
// after initialization.
var keywords = map[string]Kind{
	"module":  Module,
	"require": Require,
	"def":     Def,
	"class":   Class,
}

// Keyword looks up a reserved word, returning false if s is not one.
func Keyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}
