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
	"strconv"
	"strings"
)

// Format renders n as an S-expression. Calls print as (name args...),
// so `a + b + c` formats as (+ a (+ b c)). A Script prints one top-level
// statement per line.
func Format(n Node) string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Integer:
		sb.WriteString(strconv.FormatInt(n.Value, 10))
	case *Decimal:
		s := strconv.FormatFloat(n.Value, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		sb.WriteString(s)
	case *String:
		sb.WriteByte('"')
		sb.WriteString(n.Value)
		sb.WriteByte('"')
	case *Regex:
		sb.WriteByte('/')
		sb.WriteString(n.Pattern)
		sb.WriteByte('/')
	case *Variable:
		sb.WriteString(n.Name)
	case *Argument:
		sb.WriteString(n.Name)
		if n.IsTyped() {
			sb.WriteByte(':')
			sb.WriteString(n.Type)
		}
	case *DoBlock:
		formatList(sb, DoName, n.Args)
	case *Call:
		formatList(sb, n.Name, n.Args)
	case *FunctionDef:
		sb.WriteString("(def ")
		sb.WriteString(n.Name)
		sb.WriteString(" (")
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			format(sb, p)
		}
		sb.WriteString(") ")
		format(sb, n.Body)
		sb.WriteByte(')')
	case *ClassDef:
		sb.WriteString("(class ")
		sb.WriteString(n.Name)
		for _, f := range n.Fields {
			sb.WriteByte(' ')
			format(sb, f)
		}
		sb.WriteByte(')')
	case *FieldDef:
		sb.WriteString(n.Name)
		sb.WriteByte(':')
		format(sb, n.Type)
	case *TypeRef:
		if n == nil {
			sb.WriteString(UnknownType)
			return
		}
		sb.WriteString(n.Name)
	case *Module:
		sb.WriteString("(module ")
		sb.WriteString(n.Name)
		sb.WriteByte(')')
	case *Require:
		sb.WriteString("(require ")
		if n.IsPath {
			sb.WriteString(strconv.Quote(n.Name))
		} else {
			sb.WriteString(n.Name)
		}
		sb.WriteByte(')')
	case *Script:
		for i, stmt := range n.Statements {
			if i > 0 {
				sb.WriteByte('\n')
			}
			format(sb, stmt)
		}
	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

func formatList(sb *strings.Builder, name string, args []Node) {
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, arg := range args {
		sb.WriteByte(' ')
		format(sb, arg)
	}
	sb.WriteByte(')')
}
