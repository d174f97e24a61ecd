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
	"github.com/purple-lang/purple/token"
)

// pass is one whole-stream rewrite step of the regularizer. Each pass
// allocates a new stream and leaves its input untouched.
type pass struct {
	name string
	run  func([]token.Token) ([]token.Token, error)
}

// passes run in this order; each assumes the ones before it already ran.
var passes = []pass{
	{"decimals", infallible(mergeDecimals)},
	{"thunks", infallible(normalizeThunks)},
	{"newlines", reduceNewlines},
	{"bodies", infallible(braceBodies)},
	{"infix", infallible(rewriteInfix)},
	{"groups", infallible(tagGroups)},
}

func infallible(f func([]token.Token) []token.Token) func([]token.Token) ([]token.Token, error) {
	return func(tokens []token.Token) ([]token.Token, error) {
		return f(tokens), nil
	}
}

// PassNames returns the names of the regularizer passes, in the order they
// run.
func PassNames() []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.name
	}
	return names
}

// Regularize rewrites a scanned token stream into the strict form the
// parser consumes. In the result:
//   - every parenthesis and brace is balanced,
//   - every definition has a parenthesized parameter list, a colon and a
//     braced body,
//   - infix operators have become postfix calls, so `a + b` reads
//     `a.+(b)`,
//   - grouping parentheses are tagged GroupLParen and GroupRParen,
//   - no two EOL tokens are adjacent.
//
// The input is not modified.
func Regularize(tokens []token.Token) ([]token.Token, error) {
	return RegularizeTrace(tokens, nil)
}

// RegularizeTrace is like Regularize, but calls trace with the output of
// every pass. It is meant for debugging the pipeline.
func RegularizeTrace(tokens []token.Token, trace func(pass string, tokens []token.Token)) ([]token.Token, error) {
	for _, p := range passes {
		var err error
		tokens, err = p.run(tokens)
		if err != nil {
			return nil, err
		}
		if trace != nil {
			trace(p.name, tokens)
		}
	}
	return tokens, nil
}

// isNext reports whether the tokens immediately after index i have the
// given kinds, in order.
func isNext(tokens []token.Token, i int, kinds ...token.Kind) bool {
	if i+len(kinds) >= len(tokens) {
		return false
	}
	for j, kind := range kinds {
		if tokens[i+1+j].Kind != kind {
			return false
		}
	}
	return true
}

// mergeDecimals turns INTEGER '.' INTEGER into a single DECIMAL. It must
// run before the infix rewrite, where a dot after a number would read as
// a postfix call.
func mergeDecimals(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == token.Integer && isNext(tokens, i, token.Dot, token.Integer) &&
			tokens[i+2].Text[0] != '-' {
			out = append(out, token.Token{
				Text: tok.Text + "." + tokens[i+2].Text,
				Kind: token.Decimal,
				Pos:  tok.Pos,
			})
			i += 2
			continue
		}
		out = append(out, tok)
	}
	return out
}

// normalizeThunks gives every parameterless definition an empty parameter
// list: `def f:` becomes `def f():`.
func normalizeThunks(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens)+2)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == token.Def && isNext(tokens, i, token.Ident, token.Colon) {
			colon := tokens[i+2]
			out = append(out,
				tok,
				tokens[i+1],
				token.Synth(token.LParen, colon),
				token.Synth(token.RParen, colon),
				colon,
			)
			i += 2
			continue
		}
		out = append(out, tok)
	}
	return out
}

// reduceNewlines collapses runs of EOL into one and drops EOL entirely
// inside parentheses. It fails if parentheses or braces do not balance.
func reduceNewlines(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	var parens, braces []token.Token
	for _, tok := range tokens {
		switch tok.Kind {
		case token.LParen, token.GroupLParen:
			parens = append(parens, tok)
		case token.RParen, token.GroupRParen:
			if len(parens) == 0 {
				return nil, grammarErrorf(tok.Pos, "Unbalanced ()")
			}
			parens = parens[:len(parens)-1]
		case token.LBrace:
			braces = append(braces, tok)
		case token.RBrace:
			if len(braces) == 0 {
				return nil, grammarErrorf(tok.Pos, "Unbalanced {}")
			}
			braces = braces[:len(braces)-1]
		case token.EOL:
			if len(parens) > 0 || (len(out) > 0 && out[len(out)-1].Kind == token.EOL) {
				continue
			}
		}
		out = append(out, tok)
	}
	if len(parens) > 0 {
		return nil, grammarErrorf(parens[len(parens)-1].Pos, "Unbalanced ()")
	}
	if len(braces) > 0 {
		return nil, grammarErrorf(braces[len(braces)-1].Pos, "Unbalanced {}")
	}
	return out, nil
}

// braceBodies gives every definition body explicit braces. A body that
// follows its signature on the same or the next line, without a '{', is
// closed at the next EOL or at the end of the stream:
//
//	def f(x): x.inc      =>  def f(x): { x.inc }
//
// Class bodies are always braced in source and are copied as they are.
func braceBodies(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens)+4)
	// Brace depth of the output so far.
	depth := 0
	// For each synthesized body still open, the depth just outside of it.
	var open []int

	closeBodies := func(at token.Token) {
		for len(open) > 0 && open[len(open)-1] == depth-1 {
			out = append(out, token.Synth(token.RBrace, at))
			open = open[:len(open)-1]
			depth--
		}
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Kind == token.Class && isNext(tokens, i, token.TypeIdent, token.Colon):
			out = append(out, tokens[i:i+3]...)
			i += 2
			if isNext(tokens, i, token.EOL, token.LBrace) {
				i++
			}
			if isNext(tokens, i, token.LBrace) {
				end := matchClose(tokens, i+2, token.LBrace, token.RBrace)
				if end < 0 {
					end = len(tokens) - 1
				}
				out = append(out, tokens[i+1:end+1]...)
				i = end
			}

		case tok.Kind == token.Def && isNext(tokens, i, token.Ident):
			colon := signatureEnd(tokens, i)
			if colon < 0 {
				out = append(out, tok)
				continue
			}
			out = append(out, tokens[i:colon+1]...)
			i = colon
			switch {
			case isNext(tokens, i, token.LBrace):
			case isNext(tokens, i, token.EOL, token.LBrace):
				i++
			default:
				out = append(out, token.Synth(token.LBrace, tokens[colon]))
				open = append(open, depth)
				depth++
				if isNext(tokens, i, token.EOL) {
					i++
				}
			}

		case tok.Kind == token.LBrace:
			depth++
			out = append(out, tok)

		case tok.Kind == token.RBrace:
			closeBodies(tok)
			depth--
			out = append(out, tok)

		case tok.Kind == token.EOL:
			closeBodies(tok)
			out = append(out, tok)

		default:
			out = append(out, tok)
		}
	}
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		for range open {
			out = append(out, token.Synth(token.RBrace, last))
		}
	}
	return out
}

// signatureEnd returns the index of the colon ending the signature of the
// definition at i, or -1 if the signature is cut short by a line break,
// a brace or the end of the stream.
func signatureEnd(tokens []token.Token, i int) int {
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Kind {
		case token.Colon:
			return j
		case token.EOL, token.LBrace, token.RBrace:
			return -1
		}
	}
	return -1
}

type infixState int

const (
	stateFree infixState = iota
	stateSignature
	stateClass
)

// rewriteInfix turns infix calls into postfix calls. Whenever an atom is
// followed by an identifier, the identifier is the operator and the rest
// of the expression up to the next delimiter is its argument:
//
//	a + b + c  =>  a.+(b.+(c))
//
// so chained operators associate to the right. Signatures and class bodies
// are left alone.
func rewriteInfix(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens)*2)
	state := stateFree
	// Number of open wraps per bracket scope; the last entry is the
	// innermost scope.
	wraps := []int{0}

	closeWraps := func(at token.Token) {
		top := len(wraps) - 1
		for ; wraps[top] > 0; wraps[top]-- {
			out = append(out, token.Synth(token.RParen, at))
		}
	}
	openWrap := func(atom, op token.Token) {
		out = append(out, atom, token.Synth(token.Dot, op), op, token.Synth(token.LParen, op))
		wraps[len(wraps)-1]++
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch state {
		case stateSignature:
			if tok.Kind == token.Colon {
				state = stateFree
			}
			out = append(out, tok)
			continue
		case stateClass:
			if tok.Kind == token.RBrace {
				state = stateFree
			}
			out = append(out, tok)
			continue
		}

		switch {
		case tok.Kind == token.Def && isNext(tokens, i, token.Ident):
			state = stateSignature
			out = append(out, tok)

		case tok.Kind == token.Class && isNext(tokens, i, token.TypeIdent, token.Colon):
			state = stateClass
			out = append(out, tok)

		case tok.Kind.IsOpen():
			wraps = append(wraps, 0)
			out = append(out, tok)

		case tok.Kind.IsClose():
			closeWraps(tok)
			if len(wraps) > 1 {
				wraps = wraps[:len(wraps)-1]
			}
			if tok.Is(token.RParen, token.GroupRParen) && isNext(tokens, i, token.Ident) {
				// a closed group or call is an atom again
				openWrap(tok, tokens[i+1])
				i++
				continue
			}
			out = append(out, tok)

		case tok.Is(token.EOL, token.Comma):
			closeWraps(tok)
			out = append(out, tok)

		case tok.IsAtom() && isNext(tokens, i, token.Ident):
			openWrap(tok, tokens[i+1])
			i++

		default:
			out = append(out, tok)
		}
	}

	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		for len(wraps) > 0 {
			closeWraps(last)
			wraps = wraps[:len(wraps)-1]
		}
	}
	return out
}

// tagGroups marks parentheses that only group an expression, as opposed
// to those holding the arguments of a call or the parameters of a
// definition. A call's '(' always comes two tokens after a '.' or a 'def'.
//
// A group around a single atom away from the ends of the stream, such as
// the (b) in `a.f((b), c)`, is removed altogether.
func tagGroups(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	// For each open paren, whether it is a group.
	var groups []bool
	n := len(tokens)
	for i := 0; i < n; i++ {
		tok := tokens[i]
		switch tok.Kind {
		case token.LParen, token.GroupLParen:
			isCall := tok.Kind == token.LParen && i >= 2 && tokens[i-2].Is(token.Dot, token.Def)
			if !isCall && collapsible(tokens, i) {
				out = append(out, tokens[i+1])
				i += 2
				continue
			}
			groups = append(groups, !isCall)
			if !isCall {
				tok.Kind = token.GroupLParen
			}
		case token.RParen, token.GroupRParen:
			isGroup := false
			if len(groups) > 0 {
				isGroup = groups[len(groups)-1]
				groups = groups[:len(groups)-1]
			}
			tok.Kind = token.RParen
			if isGroup {
				tok.Kind = token.GroupRParen
			}
		}
		out = append(out, tok)
	}
	return out
}

// collapsible reports whether the group opening at i wraps a single atom
// and lies clear of the first two and last two tokens of the stream.
func collapsible(tokens []token.Token, i int) bool {
	if i < 2 || i+2 > len(tokens)-3 || tokens[i-1].Kind == token.Dot {
		return false
	}
	inner := tokens[i+1]
	if !inner.Is(token.Ident, token.TypeIdent) && !inner.Kind.IsLiteral() {
		return false
	}
	return tokens[i+2].Is(token.RParen, token.GroupRParen)
}

// matchClose returns the index of the close token that balances an open
// token just before start, or -1 if the stream ends first.
func matchClose(tokens []token.Token, start int, open, close token.Kind) int {
	depth := 1
	for i := start; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
