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

// Package ast defines types for modeling the AST (Abstract Syntax
// Tree) for the Purple language.
//
// All nodes of the tree implement the Node interface. The set of node
// types is closed: consumers dispatch on the concrete type with a type
// switch, and user code should not attempt to implement Node.
//
// Infix operators never appear in the tree. The regularizer rewrites
// them into postfix calls before parsing, so a Call is the universal
// node for both `a.plus(b)` and `a + b`. A DoBlock is a Call that holds
// the statements of a multi-statement body.
//
// Nodes are built bottom-up by the parser and are not modified after
// construction. Each node exclusively owns its children.
package ast
