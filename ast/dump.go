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

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// dumpNode is the YAML shape of a node. Only the fields relevant to the
// node's kind are set.
type dumpNode struct {
	Kind       string      `yaml:"kind"`
	Name       string      `yaml:"name,omitempty"`
	Type       string      `yaml:"type,omitempty"`
	Value      any         `yaml:"value,omitempty"`
	At         string      `yaml:"at,omitempty"`
	Params     []*dumpNode `yaml:"params,omitempty"`
	Fields     []*dumpNode `yaml:"fields,omitempty"`
	Args       []*dumpNode `yaml:"args,omitempty"`
	Statements []*dumpNode `yaml:"statements,omitempty"`
	Body       *dumpNode   `yaml:"body,omitempty"`
}

// Dump writes n to w as a YAML document. When withPos is set, every node
// that has a known line records the position it starts at.
func Dump(w io.Writer, n Node, withPos bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDump(n, withPos)); err != nil {
		return fmt.Errorf("failed to dump %T: %w", n, err)
	}
	return enc.Close()
}

func toDump(n Node, withPos bool) *dumpNode {
	if n == nil {
		return nil
	}
	d := &dumpNode{}
	if pos := n.Position(); withPos && pos.Line > 0 {
		d.At = pos.String()
	}
	switch n := n.(type) {
	case *Integer:
		d.Kind, d.Value = "integer", n.Value
	case *Decimal:
		d.Kind, d.Value = "decimal", n.Value
	case *String:
		d.Kind, d.Value = "string", n.Value
	case *Regex:
		d.Kind, d.Value = "regex", n.Pattern
	case *Variable:
		d.Kind, d.Name = "variable", n.Name
	case *Argument:
		d.Kind, d.Name, d.Type = "argument", n.Name, n.Type
	case *DoBlock:
		d.Kind = "do"
		d.Statements = toDumpList(n.Args, withPos)
	case *Call:
		d.Kind, d.Name = "call", n.Name
		d.Args = toDumpList(n.Args, withPos)
	case *FunctionDef:
		d.Kind, d.Name = "def", n.Name
		for _, p := range n.Params {
			d.Params = append(d.Params, toDump(p, withPos))
		}
		d.Body = toDump(n.Body, withPos)
	case *ClassDef:
		d.Kind, d.Name = "class", n.Name
		for _, f := range n.Fields {
			d.Fields = append(d.Fields, toDump(f, withPos))
		}
	case *FieldDef:
		d.Kind, d.Name = "field", n.Name
		if n.Type != nil {
			d.Type = n.Type.Name
		}
	case *TypeRef:
		d.Kind, d.Name = "type", n.Name
	case *Module:
		d.Kind, d.Name = "module", n.Name
	case *Require:
		d.Kind, d.Name = "require", n.Name
		if n.IsPath {
			d.Kind = "require_path"
		}
	case *Script:
		d.Kind, d.Name = "script", n.Name
		d.Statements = toDumpList(n.Statements, withPos)
	}
	return d
}

func toDumpList(nodes []Node, withPos bool) []*dumpNode {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*dumpNode, len(nodes))
	for i, n := range nodes {
		out[i] = toDump(n, withPos)
	}
	return out
}
