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
	"sync"

	"github.com/purple-lang/purple/token"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, compilation will abort with that error. If the
// reporter returns nil, compilation continues with the remaining units so
// that as many broken units as possible are reported. A unit that failed
// never yields a partial AST either way.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// never cause compilation to fail.
type WarningReporter func(ErrorWithPos)

// Reporter receives errors and warnings produced while compiling.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter builds a Reporter out of the given functions. Either may be
// nil: a nil error reporter fails on the first error, a nil warning reporter
// drops warnings.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler funnels errors from concurrently compiled units into a Reporter
// and remembers the first error the Reporter decided to fail with.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler returns a handler for the given reporter. A nil reporter fails
// on the first error.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports a new positioned error.
func (h *Handler) HandleErrorf(pos token.Pos, format string, args ...any) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleError reports err. Errors that carry no position are not passed to
// the reporter; they are always fatal.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	var ewp ErrorWithPos
	if errors.As(err, &ewp) {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarning reports a warning at the given position.
func (h *Handler) HandleWarning(pos token.Pos, err error) {
	// no need for lock; warnings don't interact with mutable fields
	h.reporter.Warning(errorWithPos{pos: pos, underlying: err})
}

// Error returns the error compilation should fail with, if any. It is
// ErrInvalidSource if errors were reported but the reporter swallowed all
// of them.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error the reporter has failed with, if any.
// Unlike Error, it is nil while the reporter keeps swallowing errors.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
