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

const (
	Ident     Kind = iota // An identifier, including operator names such as +.
	TypeIdent             // A capitalized identifier naming a type.
	Integer               // A run of digits with an optional leading minus.
	Decimal               // INTEGER '.' INTEGER, merged by the regularizer.
	String                // A double-quoted string literal.
	Regex                 // A /slash delimited/ regex literal.

	Dot   // .
	Comma // ,
	Colon // :

	LParen      // ( of a call argument list.
	RParen      // ) of a call argument list.
	GroupLParen // ( used purely for grouping; tagged by the regularizer.
	GroupRParen // ) used purely for grouping; tagged by the regularizer.
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]

	ThinArrow // ->
	FatArrow  // =>
	EOL       // An explicit line break.

	Module  // module
	Require // require
	Def     // def
	Class   // class

	kindCount
)

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

var kindNames = [kindCount]string{
	Ident:       "IDENT",
	TypeIdent:   "TYPE_IDENT",
	Integer:     "INTEGER",
	Decimal:     "DECIMAL",
	String:      "STRING",
	Regex:       "REGEX",
	Dot:         "DOT",
	Comma:       "COMMA",
	Colon:       "COLON",
	LParen:      "LPAREN",
	RParen:      "RPAREN",
	GroupLParen: "GROUP_LPAREN",
	GroupRParen: "GROUP_RPAREN",
	LBrace:      "LBRACE",
	RBrace:      "RBRACE",
	LBracket:    "LBRACKET",
	RBracket:    "RBRACKET",
	ThinArrow:   "THIN_ARROW",
	FatArrow:    "FAT_ARROW",
	EOL:         "EOL",
	Module:      "MODULE",
	Require:     "REQUIRE",
	Def:         "DEF",
	Class:       "CLASS",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("token.Kind(%d)", int(k))
}

// IsKeyword returns whether this kind is produced by a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= Module && k < kindCount
}

// IsLiteral returns whether this kind is a numeric, string or regex literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case Integer, Decimal, String, Regex:
		return true
	default:
		return false
	}
}

// IsOpen returns whether this kind opens a bracketed scope.
func (k Kind) IsOpen() bool {
	switch k {
	case LParen, GroupLParen, LBrace, LBracket:
		return true
	default:
		return false
	}
}

// IsClose returns whether this kind closes a bracketed scope.
func (k Kind) IsClose() bool {
	switch k {
	case RParen, GroupRParen, RBrace, RBracket:
		return true
	default:
		return false
	}
}

// IsWord returns whether tokens of this kind are written as a run of word
// runes, as opposed to punctuation.
func (k Kind) IsWord() bool {
	return k <= Regex || k == ThinArrow || k == FatArrow || k.IsKeyword()
}
