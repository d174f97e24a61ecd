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

package reporter

import (
	"errors"
	"fmt"

	"github.com/purple-lang/purple/token"
)

// ErrInvalidSource is a sentinel error that is returned by
// Compiler.Compile in the event that lexical or grammar errors are
// encountered, but the configured ErrorReporter always returns nil.
var ErrInvalidSource = errors.New("parse failed: invalid Purple source")

// ErrorWithPos is an error about a Purple source file that includes
// information about the location in the file that caused the error.
//
// The value of Error() will contain both the position and the Underlying
// error. The value of Unwrap() will only be the Underlying error.
type ErrorWithPos interface {
	error
	GetPosition() token.Pos
	Unwrap() error
}

// Error wraps err with the given position.
func Error(pos token.Pos, err error) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: err}
}

// Errorf builds a new error with the given position.
func Errorf(pos token.Pos, format string, args ...any) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithPos struct {
	underlying error
	pos        token.Pos
}

func (e errorWithPos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

// GetPosition implements the ErrorWithPos interface, supplying a location in
// Purple source that caused the error.
func (e errorWithPos) GetPosition() token.Pos {
	return e.pos
}

// Unwrap implements the ErrorWithPos interface, supplying the underlying
// error. This error will not include location information.
func (e errorWithPos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithPos{}
