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

// Package token defines the lexical vocabulary of Purple source: the kinds
// of tokens the scanner produces, the token values themselves, the reserved
// word table and a debug detokenizer.
//
// Tokens are immutable values. Every pass of the regularizer consumes one
// token slice and allocates a new one, so a []Token may be shared freely
// once built.
package token
