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

// Package walk provides helper functions for traversing a Purple AST.
package walk

import (
	"errors"

	"github.com/purple-lang/purple/ast"
)

// ErrSkipChildren may be returned by an enter function to prevent the
// children of the current node from being visited. The node's exit
// function is still called.
var ErrSkipChildren = errors.New("skip children")

// Nodes walks the tree rooted at root in depth-first order, calling fn for
// every node before its children. Walking stops at the first error fn
// returns, which is returned.
func Nodes(root ast.Node, fn func(ast.Node) error) error {
	return NodesEnterAndExit(root, fn, nil)
}

// NodesEnterAndExit is like Nodes, but also calls exit, if not nil, after
// all of a node's children have been visited.
func NodesEnterAndExit(root ast.Node, enter, exit func(ast.Node) error) error {
	if root == nil {
		return nil
	}
	if err := enter(root); err != nil {
		if !errors.Is(err, ErrSkipChildren) {
			return err
		}
	} else {
		for _, child := range Children(root) {
			if err := NodesEnterAndExit(child, enter, exit); err != nil {
				return err
			}
		}
	}
	if exit != nil {
		return exit(root)
	}
	return nil
}

// Children returns the direct children of n, in source order.
func Children(n ast.Node) []ast.Node {
	switch n := n.(type) {
	case *ast.Script:
		return n.Statements
	case *ast.DoBlock:
		return n.Args
	case *ast.Call:
		return n.Args
	case *ast.FunctionDef:
		children := make([]ast.Node, 0, len(n.Params)+1)
		for _, p := range n.Params {
			children = append(children, p)
		}
		if n.Body != nil {
			children = append(children, n.Body)
		}
		return children
	case *ast.ClassDef:
		children := make([]ast.Node, len(n.Fields))
		for i, f := range n.Fields {
			children[i] = f
		}
		return children
	case *ast.FieldDef:
		if n.Type != nil {
			return []ast.Node{n.Type}
		}
	}
	return nil
}

// Calls returns every call in the tree rooted at root, in depth-first
// order. Do-blocks are not calls for this purpose.
func Calls(root ast.Node) []*ast.Call {
	var calls []*ast.Call
	_ = Nodes(root, func(n ast.Node) error {
		if call, ok := n.(*ast.Call); ok {
			calls = append(calls, call)
		}
		return nil
	})
	return calls
}
