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

package parser

import (
	"io"
	"strconv"

	"github.com/purple-lang/purple/ast"
	"github.com/purple-lang/purple/token"
)

// MaxNestingDepth bounds how deeply expressions may nest before parsing
// fails, so hostile input cannot exhaust the stack.
const MaxNestingDepth = 1000

// ParseSource scans, regularizes and parses the given source file.
func ParseSource(filename string, r io.Reader) (*ast.Script, error) {
	tokens, err := Tokenize(filename, r)
	if err != nil {
		return nil, err
	}
	tokens, err = Regularize(tokens)
	if err != nil {
		return nil, err
	}
	return ParseScript(filename, tokens)
}

// Parse parses the first top-level construct of a regularized token stream:
// an expression, a definition or a module declaration. Leading EOLs are
// skipped; anything after the construct is ignored.
func Parse(tokens []token.Token) (ast.Node, error) {
	p := &parser{toks: tokens}
	node, _, err := p.parseRange(0, len(tokens))
	return node, err
}

// ParseScript parses every top-level statement of a regularized token
// stream. Statements are separated by EOL tokens.
func ParseScript(name string, tokens []token.Token) (*ast.Script, error) {
	p := &parser{toks: tokens}
	stmts, err := p.statements(0, len(tokens))
	if err != nil {
		return nil, err
	}
	return &ast.Script{Name: name, Statements: stmts}, nil
}

// parser is a recursive-descent parser over a regularized stream. Every
// rule takes a half-open range [start, end) of the stream and returns the
// node it built along with the index just past what it consumed.
//
// A parser must not be shared between goroutines.
type parser struct {
	toks  []token.Token
	depth int
}

// parseRange parses one expression or construct starting at start. It
// stops at the first EOL that follows a complete expression.
func (p *parser) parseRange(start, end int) (ast.Node, int, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxNestingDepth {
		return nil, start, grammarErrorf(p.posAt(start), "Expression nested too deeply")
	}

	var node ast.Node
	// Index of the token that produced node when it is a bare variable
	// at the head of the range, else -1.
	head := -1
	i := start
	for i < end {
		tok := p.toks[i]
		if tok.Kind == token.EOL {
			if node != nil {
				break
			}
			i++
			continue
		}

		if node == nil {
			switch tok.Kind {
			case token.Class:
				return p.classDef(i, end)
			case token.Def:
				return p.functionDef(i, end)
			case token.Module, token.Require:
				return p.moduleDecl(i, end)
			}
		} else {
			if head >= 0 && i == head+1 {
				// command-style call: `puts 1 + 2` calls puts with the
				// rest of the range as its only argument
				name := node.(*ast.Variable)
				arg, next, err := p.parseRange(i, end)
				if err != nil {
					return nil, next, err
				}
				return &ast.Call{Pos: name.Pos, Name: name.Name, Args: []ast.Node{arg}}, next, nil
			}
			return nil, i, grammarErrorf(tok.Pos, "Unexpected %s after expression", describe(tok))
		}

		var err error
		opStart := i
		node, i, err = p.operand(i, end)
		if err != nil {
			return nil, i, err
		}
		if _, isVar := node.(*ast.Variable); isVar && i == opStart+1 {
			head = opStart
		}
		for i < end && p.toks[i].Kind == token.Dot {
			head = -1
			node, i, err = p.postfixCall(node, i, end)
			if err != nil {
				return nil, i, err
			}
		}
	}

	if node == nil {
		return nil, i, grammarErrorf(p.posAt(start), "Expected expression")
	}
	return node, i, nil
}

// parseExpr parses an expression that must span all of [start, end).
func (p *parser) parseExpr(start, end int) (ast.Node, error) {
	node, next, err := p.parseRange(start, end)
	if err != nil {
		return nil, err
	}
	for next < end && p.toks[next].Kind == token.EOL {
		next++
	}
	if next < end {
		tok := p.toks[next]
		return nil, grammarErrorf(tok.Pos, "Unexpected %s after expression", describe(tok))
	}
	return node, nil
}

// operand parses a single literal, variable or grouped expression.
func (p *parser) operand(i, end int) (ast.Node, int, error) {
	tok := p.toks[i]
	switch tok.Kind {
	case token.Integer:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, i, grammarErrorf(tok.Pos, "Invalid integer literal %s", tok.Text)
		}
		return &ast.Integer{Pos: tok.Pos, Value: v}, i + 1, nil

	case token.Decimal:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, i, grammarErrorf(tok.Pos, "Invalid decimal literal %s", tok.Text)
		}
		return &ast.Decimal{Pos: tok.Pos, Value: v}, i + 1, nil

	case token.String:
		return &ast.String{Pos: tok.Pos, Value: unwrap(tok.Text)}, i + 1, nil

	case token.Regex:
		return &ast.Regex{Pos: tok.Pos, Pattern: unwrap(tok.Text)}, i + 1, nil

	case token.Ident, token.TypeIdent:
		return &ast.Variable{Pos: tok.Pos, Name: tok.Text}, i + 1, nil

	case token.GroupLParen:
		closeIdx := matchClose(p.toks[:end], i+1, token.GroupLParen, token.GroupRParen)
		if closeIdx < 0 {
			return nil, i, grammarErrorf(tok.Pos, "Missing ) in grouping")
		}
		if closeIdx == i+1 {
			return nil, i, grammarErrorf(tok.Pos, "Empty grouping")
		}
		inner, err := p.parseExpr(i+1, closeIdx)
		if err != nil {
			return nil, i, err
		}
		return inner, closeIdx + 1, nil
	}
	return nil, i, grammarErrorf(tok.Pos, "Unexpected %s", describe(tok))
}

// postfixCall parses `.name` or `.name(args...)` after recv. The dot is
// at i. The receiver becomes the first argument of the call.
func (p *parser) postfixCall(recv ast.Node, i, end int) (ast.Node, int, error) {
	if i+1 >= end || p.toks[i+1].Kind != token.Ident {
		return nil, i, grammarErrorf(p.toks[i].Pos, "Expected function name after .")
	}
	name := p.toks[i+1]
	call := &ast.Call{Pos: name.Pos, Name: name.Text, Args: []ast.Node{recv}}

	j := i + 2
	if j >= end || p.toks[j].Kind != token.LParen {
		return call, j, nil
	}
	closeIdx := matchClose(p.toks[:end], j+1, token.LParen, token.RParen)
	if closeIdx < 0 {
		return nil, j, grammarErrorf(p.toks[j].Pos, "Missing ) in parenthetical function call")
	}
	args, err := p.argList(j+1, closeIdx)
	if err != nil {
		return nil, j, err
	}
	call.Args = append(call.Args, args...)
	return call, closeIdx + 1, nil
}

// argList parses the comma separated arguments in [start, end). Commas
// nested inside brackets of any kind do not split.
func (p *parser) argList(start, end int) ([]ast.Node, error) {
	if start == end {
		return nil, nil
	}
	var args []ast.Node
	for _, span := range p.split(start, end, token.Comma) {
		if span.start == span.end {
			return nil, grammarErrorf(p.posAt(span.start), "Empty argument in function call")
		}
		arg, err := p.parseExpr(span.start, span.end)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// statements parses the EOL separated statements in [start, end), skipping
// blank ones.
func (p *parser) statements(start, end int) ([]ast.Node, error) {
	var stmts []ast.Node
	for _, span := range p.split(start, end, token.EOL) {
		if span.start == span.end {
			continue
		}
		stmt, err := p.parseExpr(span.start, span.end)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

type span struct {
	start, end int
}

// split divides [start, end) at every sep that is not nested inside
// brackets. The separators themselves belong to no span.
func (p *parser) split(start, end int, sep token.Kind) []span {
	var spans []span
	depth := 0
	from := start
	for i := start; i < end; i++ {
		kind := p.toks[i].Kind
		switch {
		case kind.IsOpen():
			depth++
		case kind.IsClose():
			depth--
		case kind == sep && depth == 0:
			spans = append(spans, span{from, i})
			from = i + 1
		}
	}
	return append(spans, span{from, end})
}

// functionDef parses `def name(params): { body }` starting at the def.
func (p *parser) functionDef(i, end int) (ast.Node, int, error) {
	def := p.toks[i]
	if i+1 >= end || p.toks[i+1].Kind != token.Ident {
		return nil, i, grammarErrorf(def.Pos, "Expected function name after def")
	}
	name := p.toks[i+1]
	if i+2 >= end || p.toks[i+2].Kind != token.LParen {
		return nil, i, grammarErrorf(name.Pos, "Expected ( after def %s", name.Text)
	}

	var params []*ast.Argument
	j := i + 3
	for ; j < end && p.toks[j].Kind != token.RParen; j++ {
		tok := p.toks[j]
		switch tok.Kind {
		case token.Comma:
		case token.Ident:
			params = append(params, &ast.Argument{Pos: tok.Pos, Name: tok.Text, Type: ast.UnknownType})
		case token.TypeIdent:
			if j+1 >= end || p.toks[j+1].Kind != token.Ident {
				return nil, j, grammarErrorf(tok.Pos, "Expected parameter name after type %s", tok.Text)
			}
			params = append(params, &ast.Argument{Pos: tok.Pos, Name: p.toks[j+1].Text, Type: tok.Text})
			j++
		default:
			return nil, j, grammarErrorf(tok.Pos, "Unexpected %s in parameters of %s", describe(tok), name.Text)
		}
	}
	if j >= end {
		return nil, j, grammarErrorf(p.toks[i+2].Pos, "Missing ) in function definition")
	}
	j++
	if j >= end || p.toks[j].Kind != token.Colon {
		return nil, j, grammarErrorf(p.posAt(j), "Expected : after signature of %s", name.Text)
	}
	j++
	if j >= end || p.toks[j].Kind != token.LBrace {
		return nil, j, grammarErrorf(p.posAt(j), "Expected { after signature of %s", name.Text)
	}
	open := p.toks[j]
	closeIdx := matchClose(p.toks[:end], j+1, token.LBrace, token.RBrace)
	if closeIdx < 0 {
		return nil, j, grammarErrorf(open.Pos, "Missing } in function definition")
	}

	stmts, err := p.statements(j+1, closeIdx)
	if err != nil {
		return nil, j, err
	}
	var body ast.Node
	switch len(stmts) {
	case 0:
		return nil, j, grammarErrorf(open.Pos, "Empty function body")
	case 1:
		body = stmts[0]
	default:
		body = ast.NewDoBlock(open.Pos, stmts)
	}
	return &ast.FunctionDef{Pos: def.Pos, Name: name.Text, Params: params, Body: body}, closeIdx + 1, nil
}

// classDef parses `class Name: { Type field ... }` starting at the class.
// Fields are read until the closing brace or the end of the stream.
func (p *parser) classDef(i, end int) (ast.Node, int, error) {
	class := p.toks[i]
	if i+1 >= end || p.toks[i+1].Kind != token.TypeIdent {
		return nil, i, grammarErrorf(class.Pos, "Expected type name after class")
	}
	name := p.toks[i+1]
	if i+2 >= end || p.toks[i+2].Kind != token.Colon {
		return nil, i, grammarErrorf(name.Pos, "Expected : after class %s", name.Text)
	}
	j := i + 3
	if j < end && p.toks[j].Kind == token.EOL {
		j++
	}
	if j >= end || p.toks[j].Kind != token.LBrace {
		return nil, j, grammarErrorf(p.posAt(j), "Expected { after class %s", name.Text)
	}

	def := &ast.ClassDef{Pos: class.Pos, Name: name.Text}
	for j++; j < end; {
		tok := p.toks[j]
		switch {
		case tok.Kind == token.EOL:
			j++
		case tok.Kind == token.RBrace:
			return def, j + 1, nil
		case tok.Kind == token.TypeIdent && j+1 < end && p.toks[j+1].Kind == token.Ident:
			def.Fields = append(def.Fields, &ast.FieldDef{
				Pos:  tok.Pos,
				Name: p.toks[j+1].Text,
				Type: &ast.TypeRef{Pos: tok.Pos, Name: tok.Text},
			})
			j += 2
		default:
			return nil, j, grammarErrorf(tok.Pos, "Expected field type and name in class %s", name.Text)
		}
	}
	return def, j, nil
}

// moduleDecl parses `module a.b` or `require a.b` / `require "path"`.
func (p *parser) moduleDecl(i, end int) (ast.Node, int, error) {
	kw := p.toks[i]
	if kw.Kind == token.Require && i+1 < end && p.toks[i+1].Kind == token.String {
		return &ast.Require{Pos: kw.Pos, Name: unwrap(p.toks[i+1].Text), IsPath: true}, i + 2, nil
	}

	name, next, ok := p.dottedName(i+1, end)
	if !ok {
		return nil, i, grammarErrorf(kw.Pos, "Expected module name after %s", kw.Text)
	}
	if kw.Kind == token.Module {
		return &ast.Module{Pos: kw.Pos, Name: name}, next, nil
	}
	return &ast.Require{Pos: kw.Pos, Name: name}, next, nil
}

// dottedName reads name ('.' name)* starting at i.
func (p *parser) dottedName(i, end int) (string, int, bool) {
	isName := func(j int) bool {
		return j < end && p.toks[j].Is(token.Ident, token.TypeIdent)
	}
	if !isName(i) {
		return "", i, false
	}
	name := p.toks[i].Text
	i++
	for i+1 < end && p.toks[i].Kind == token.Dot && isName(i+1) {
		name += "." + p.toks[i+1].Text
		i += 2
	}
	return name, i, true
}

// posAt returns the position of the token at i, or of the last token when
// i is past the end of the stream.
func (p *parser) posAt(i int) token.Pos {
	switch {
	case len(p.toks) == 0:
		return token.Pos{}
	case i >= len(p.toks):
		return p.toks[len(p.toks)-1].Pos
	default:
		return p.toks[i].Pos
	}
}

// unwrap strips the delimiters of a string or regex lexeme.
func unwrap(text string) string {
	if len(text) < 2 {
		return text
	}
	return text[1 : len(text)-1]
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOL {
		return "end of line"
	}
	return "'" + tok.Text + "'"
}
