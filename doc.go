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

// Package purple provides the entry point for the Purple language front end.
// "Compile" in this case means scanning, regularizing and parsing source
// units into syntax trees. Nothing is evaluated or type checked.
//
// The various sub-packages represent the phases of the front end and
// contain the models for their results:
//  1. Scan source into tokens.
//     Also see: parser.Tokenize
//  2. Rewrite the token stream into its regular form.
//     Also see: parser.Regularize
//  3. Parse the regular stream into a syntax tree.
//     Also see: parser.ParseScript
//
// # Resolvers
//
// A Resolver is how the compiler locates its inputs. It can answer a query
// with source code, with an already regularized token stream, or with an
// already parsed script, in which case the steps that produced it are
// skipped.
//
// # Compiler
//
// A Compiler accepts a list of unit names and produces one Result per name.
// Only the Resolver field is required:
//
//	compiler := purple.Compiler{
//		Resolver: &purple.SourceResolver{},
//	}
//
// This minimal Compiler compiles as many units at once as there are CPU
// cores and fails at the first error. Both can be changed by setting other
// fields. A Config loaded from a project file can also build a Compiler.
package purple
