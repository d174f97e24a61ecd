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

package ast

import "github.com/purple-lang/purple/token"

// UnknownType is the type recorded for an argument declared without one.
const UnknownType = "unknown"

// DoName is the callee name of every DoBlock.
const DoName = "do"

// Node is implemented by every element of the tree.
type Node interface {
	// Position returns the location of the token the node starts at.
	Position() token.Pos

	node()
}

// Integer is an integer literal.
type Integer struct {
	Pos   token.Pos
	Value int64
}

// Decimal is a decimal literal such as 11.0.
type Decimal struct {
	Pos   token.Pos
	Value float64
}

// String is a string literal. Value excludes the surrounding quotes and
// keeps escape sequences as written.
type String struct {
	Pos   token.Pos
	Value string
}

// Regex is a regex literal. Pattern excludes the surrounding slashes.
type Regex struct {
	Pos     token.Pos
	Pattern string
}

// Variable is a reference to a name.
type Variable struct {
	Pos  token.Pos
	Name string
}

// Argument is a declared parameter of a function definition. Type is
// UnknownType when the parameter was declared without a type.
type Argument struct {
	Pos  token.Pos
	Name string
	Type string
}

// IsTyped reports whether the argument was declared with a type.
func (a *Argument) IsTyped() bool {
	return a.Type != UnknownType
}

// Call is a function call. Postfix calls carry their receiver as the
// first argument: `11.increment` is a call to increment with the single
// argument 11.
type Call struct {
	Pos  token.Pos
	Name string
	Args []Node
}

// DoBlock is a sequence of statements that evaluates to the last one.
// It is only produced for bodies with more than one statement. The
// embedded call is named DoName and its arguments are the statements.
type DoBlock struct {
	Call
}

// NewDoBlock returns a do-block holding the given statements.
func NewDoBlock(pos token.Pos, statements []Node) *DoBlock {
	return &DoBlock{Call: Call{Pos: pos, Name: DoName, Args: statements}}
}

// Statements returns the statements of the block, in order.
func (d *DoBlock) Statements() []Node {
	return d.Args
}

// FunctionDef is a function definition. A definition without parameters
// is a thunk.
type FunctionDef struct {
	Pos    token.Pos
	Name   string
	Params []*Argument
	Body   Node
}

// IsThunk reports whether the function takes no parameters.
func (f *FunctionDef) IsThunk() bool {
	return len(f.Params) == 0
}

// ClassDef is a class definition.
type ClassDef struct {
	Pos    token.Pos
	Name   string
	Fields []*FieldDef
}

// FieldDef is a field of a class.
type FieldDef struct {
	Pos  token.Pos
	Name string
	Type *TypeRef
}

// TypeRef names a type. It is not resolved against any definition.
type TypeRef struct {
	Pos  token.Pos
	Name string
}

// Module declares the module the enclosing script belongs to.
type Module struct {
	Pos  token.Pos
	Name string
}

// Require names a module or file the enclosing script depends on. Name
// is a dotted module name, or the contents of a string literal when
// IsPath is set.
type Require struct {
	Pos    token.Pos
	Name   string
	IsPath bool
}

// Script is the ordered list of top-level statements of one source file.
type Script struct {
	Name       string
	Statements []Node
}

// Position returns the position of the first statement, or a position
// holding only the script name if it is empty.
func (s *Script) Position() token.Pos {
	if len(s.Statements) == 0 {
		return token.Pos{Filename: s.Name}
	}
	return s.Statements[0].Position()
}

func (n *Integer) Position() token.Pos     { return n.Pos }
func (n *Decimal) Position() token.Pos     { return n.Pos }
func (n *String) Position() token.Pos      { return n.Pos }
func (n *Regex) Position() token.Pos       { return n.Pos }
func (n *Variable) Position() token.Pos    { return n.Pos }
func (n *Argument) Position() token.Pos    { return n.Pos }
func (n *Call) Position() token.Pos        { return n.Pos }
func (n *FunctionDef) Position() token.Pos { return n.Pos }
func (n *ClassDef) Position() token.Pos    { return n.Pos }
func (n *FieldDef) Position() token.Pos    { return n.Pos }
func (n *TypeRef) Position() token.Pos     { return n.Pos }
func (n *Module) Position() token.Pos      { return n.Pos }
func (n *Require) Position() token.Pos     { return n.Pos }

func (*Integer) node()     {}
func (*Decimal) node()     {}
func (*String) node()      {}
func (*Regex) node()       {}
func (*Variable) node()    {}
func (*Argument) node()    {}
func (*Call) node()        {}
func (*DoBlock) node()     {}
func (*FunctionDef) node() {}
func (*ClassDef) node()    {}
func (*FieldDef) node()    {}
func (*TypeRef) node()     {}
func (*Module) node()      {}
func (*Require) node()     {}
func (*Script) node()      {}

var (
	_ Node = (*Integer)(nil)
	_ Node = (*Decimal)(nil)
	_ Node = (*String)(nil)
	_ Node = (*Regex)(nil)
	_ Node = (*Variable)(nil)
	_ Node = (*Argument)(nil)
	_ Node = (*Call)(nil)
	_ Node = (*DoBlock)(nil)
	_ Node = (*FunctionDef)(nil)
	_ Node = (*ClassDef)(nil)
	_ Node = (*FieldDef)(nil)
	_ Node = (*TypeRef)(nil)
	_ Node = (*Module)(nil)
	_ Node = (*Require)(nil)
	_ Node = (*Script)(nil)
)
