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
	"errors"
	"fmt"

	"github.com/purple-lang/purple/reporter"
	"github.com/purple-lang/purple/token"
)

var (
	// ErrLexical is matched by every error produced while scanning, such
	// as an unrecognized symbol or an unterminated string.
	ErrLexical = errors.New("lexical error")
	// ErrGrammar is matched by every error produced while regularizing or
	// parsing a token stream.
	ErrGrammar = errors.New("grammar error")
)

type lexicalError string

func (e lexicalError) Error() string {
	return string(e)
}

func (lexicalError) Is(target error) bool {
	return target == ErrLexical
}

type grammarError string

func (e grammarError) Error() string {
	return string(e)
}

func (grammarError) Is(target error) bool {
	return target == ErrGrammar
}

func lexicalErrorf(pos token.Pos, format string, args ...any) reporter.ErrorWithPos {
	return reporter.Error(pos, lexicalError(fmt.Sprintf(format, args...)))
}

func grammarErrorf(pos token.Pos, format string, args ...any) reporter.ErrorWithPos {
	return reporter.Error(pos, grammarError(fmt.Sprintf(format, args...)))
}
