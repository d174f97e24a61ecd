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

package token

import "fmt"

// Pos is a location in a source file.
type Pos struct {
	Filename string
	// 1-based line and column. Columns count grapheme clusters, not bytes.
	Line, Col int
	// 0-based byte offset into the file.
	Offset int
}

// String returns "file:line:col", omitting the file name when it is unknown.
func (p Pos) String() string {
	if p.Line == 0 {
		if p.Filename == "" {
			return "<input>"
		}
		return p.Filename
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// Token is a single lexeme together with its kind.
//
// Two tokens are the same token if their text and kind agree; the position
// is informational and is ignored by [Token.Equal].
type Token struct {
	Text string
	Kind Kind
	Pos  Pos
}

// New returns a token without position information.
func New(text string, kind Kind) Token {
	return Token{Text: text, Kind: kind}
}

// Synth returns a token of the given kind whose text is the kind's canonical
// spelling, positioned at the token that caused it to be synthesized.
func Synth(kind Kind, at Token) Token {
	return Token{Text: spelling(kind), Kind: kind, Pos: at.Pos}
}

// Equal reports whether two tokens have the same text and kind.
func (t Token) Equal(other Token) bool {
	return t.Text == other.Text && t.Kind == other.Kind
}

// Is returns whether this token is of any of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsAtom returns whether the token can stand alone as the head of an
// expression: an identifier, a literal, or the closing paren of a call.
func (t Token) IsAtom() bool {
	switch t.Kind {
	case Ident, TypeIdent, RParen:
		return true
	default:
		return t.Kind.IsLiteral()
	}
}

// IsExpressionDelimiter returns whether the token naturally ends an operand.
func (t Token) IsExpressionDelimiter() bool {
	return t.Is(EOL, RBrace, RParen, GroupRParen)
}

// PrintableText is the token's text with line breaks made visible.
func (t Token) PrintableText() string {
	if t.Kind == EOL {
		return `\n`
	}
	return t.Text
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	return fmt.Sprintf("%v(%q)", t.Kind, t.PrintableText())
}

func spelling(kind Kind) string {
	switch kind {
	case Dot:
		return "."
	case Comma:
		return ","
	case Colon:
		return ":"
	case LParen, GroupLParen:
		return "("
	case RParen, GroupRParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case ThinArrow:
		return "->"
	case FatArrow:
		return "=>"
	case EOL:
		return "\n"
	}
	for word, k := range keywords {
		if k == kind {
			return word
		}
	}
	return ""
}
