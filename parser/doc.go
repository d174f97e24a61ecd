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

// Package parser turns Purple source into an AST.
//
// Parsing happens in three stages. Tokenize scans source text into a flat
// token stream. Regularize rewrites that stream through a fixed sequence of
// passes that remove syntactic sugar: decimals are merged, thunks get an
// empty parameter list, redundant line breaks are dropped, one-line bodies
// get explicit braces, infix operators become postfix calls and grouping
// parentheses are tagged. Finally the recursive-descent parser consumes
// the regularized stream and builds nodes from package ast.
//
// Every stage fails fast. A lexical error satisfies errors.Is(err,
// ErrLexical), any other structural problem satisfies errors.Is(err,
// ErrGrammar), and both carry a position via reporter.ErrorWithPos. There
// is no partial result for a failed input.
package parser
