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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/purple-lang/purple/token"
)

type runeReader struct {
	data []byte
	pos  int
	err  error
	mark int
}

func (rr *runeReader) readRune() (r rune, size int, err error) {
	if rr.err != nil {
		return 0, 0, rr.err
	}
	if rr.pos == len(rr.data) {
		rr.err = io.EOF
		return 0, 0, rr.err
	}
	r, sz := utf8.DecodeRune(rr.data[rr.pos:])
	if r == utf8.RuneError && sz <= 1 {
		rr.err = fmt.Errorf("invalid UTF8 at offset %d: %x", rr.pos, rr.data[rr.pos])
		return 0, 0, rr.err
	}
	rr.pos += sz
	return r, sz, nil
}

func (rr *runeReader) peekRune() rune {
	if rr.pos == len(rr.data) {
		return -1
	}
	r, _ := utf8.DecodeRune(rr.data[rr.pos:])
	return r
}

func (rr *runeReader) offset() int {
	return rr.pos
}

func (rr *runeReader) unreadRune(sz int) {
	newPos := rr.pos - sz
	if newPos < rr.mark {
		panic("unread past mark")
	}
	rr.pos = newPos
}

func (rr *runeReader) setMark() {
	rr.mark = rr.pos
}

func (rr *runeReader) getMark() string {
	return string(rr.data[rr.mark:rr.pos])
}

// restOfLine returns the unread input up to, but not including, the next
// line break.
func (rr *runeReader) restOfLine() []byte {
	rest := rr.data[rr.pos:]
	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return rest
}

type lexer struct {
	input    *runeReader
	filename string

	line      int
	lineStart int
	// Depth of unclosed '(' seen so far. Line breaks are not reported
	// while it is positive.
	parens int

	tokens []token.Token
}

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

const operatorRunes = "+-*/%<>=!&|^~?$@'"

// Tokenize scans Purple source into its primitive tokens. The result has
// not been regularized yet.
//
// Whitespace is dropped, except that each line break outside of an open
// parenthesis becomes an EOL token.
func Tokenize(filename string, r io.Reader) ([]token.Token, error) {
	br := bufio.NewReader(r)

	// if file has UTF8 byte order marker preface, consume it
	marker, err := br.Peek(3)
	if err == nil && bytes.Equal(marker, utf8Bom) {
		_, _ = br.Discard(3)
	}

	contents, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	l := &lexer{
		input:    &runeReader{data: contents},
		filename: filename,
		line:     1,
	}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) run() error {
	for {
		l.input.setMark()

		c, _, err := l.input.readRune()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return lexicalErrorf(l.pos(l.input.mark), "%v", err)
		}

		if c == '\n' {
			if l.parens == 0 {
				l.emit(token.EOL)
			}
			l.line++
			l.lineStart = l.input.offset()
			continue
		}
		if unicode.IsSpace(c) {
			continue
		}

		if kind, ok := punctuation(c); ok {
			switch kind {
			case token.LParen:
				l.parens++
			case token.RParen:
				l.parens = max(l.parens-1, 0)
			}
			l.emit(kind)
			continue
		}

		if c == '"' {
			if err := l.readString(); err != nil {
				return err
			}
			l.emit(token.String)
			continue
		}

		if c == '/' && l.atRegex() {
			l.readRegex()
			l.emit(token.Regex)
			continue
		}

		if !isWordRune(c) {
			return lexicalErrorf(l.pos(l.input.mark), "unrecognized symbol: %s", string(c))
		}
		if err := l.readWord(); err != nil {
			return err
		}
		text := l.input.getMark()
		l.emitText(text, classify(text))
	}
}

func (l *lexer) emit(kind token.Kind) {
	l.emitText(l.input.getMark(), kind)
}

func (l *lexer) emitText(text string, kind token.Kind) {
	l.tokens = append(l.tokens, token.Token{
		Text: text,
		Kind: kind,
		Pos:  l.pos(l.input.mark),
	})
}

// pos returns the position of the given byte offset, which must be on the
// current line.
func (l *lexer) pos(offset int) token.Pos {
	prefix := l.input.data[l.lineStart:offset]
	return token.Pos{
		Filename: l.filename,
		Line:     l.line,
		Col:      uniseg.GraphemeClusterCount(string(prefix)) + 1,
		Offset:   offset,
	}
}

func (l *lexer) readWord() error {
	for {
		offset := l.input.offset()
		c, sz, err := l.input.readRune()
		if err != nil {
			// the error is sticky, so the main loop sees it next
			return nil
		}
		if isWordRune(c) {
			continue
		}
		if _, ok := punctuation(c); ok || c == '"' || unicode.IsSpace(c) {
			l.input.unreadRune(sz)
			return nil
		}
		return lexicalErrorf(l.pos(offset), "unrecognized symbol: %s", string(c))
	}
}

func (l *lexer) readString() error {
	for {
		c, _, err := l.input.readRune()
		if err != nil || c == '\n' {
			return lexicalErrorf(l.pos(l.input.mark), "unterminated string literal")
		}
		switch c {
		case '"':
			return nil
		case '\\':
			if c, _, err := l.input.readRune(); err != nil || c == '\n' {
				return lexicalErrorf(l.pos(l.input.mark), "unterminated string literal")
			}
		}
	}
}

// atRegex reports whether the '/' just read opens a regex literal: it must
// be followed by a non-space rune and closed again on the same line.
func (l *lexer) atRegex() bool {
	next := l.input.peekRune()
	if next == -1 || next == '/' || unicode.IsSpace(next) {
		return false
	}
	return bytes.IndexByte(l.input.restOfLine(), '/') > 0
}

func (l *lexer) readRegex() {
	rest := l.input.restOfLine()
	l.input.pos += bytes.IndexByte(rest, '/') + 1
}

func punctuation(c rune) (token.Kind, bool) {
	switch c {
	case '.':
		return token.Dot, true
	case ',':
		return token.Comma, true
	case ':':
		return token.Colon, true
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	default:
		return 0, false
	}
}

func isWordRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsMark(c) || unicode.IsDigit(c) ||
		strings.ContainsRune(operatorRunes, c)
}

func classify(word string) token.Kind {
	if kind, ok := token.Keyword(word); ok {
		return kind
	}
	switch word {
	case "->":
		return token.ThinArrow
	case "=>":
		return token.FatArrow
	}
	if isInteger(word) {
		return token.Integer
	}
	if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
		return token.TypeIdent
	}
	return token.Ident
}

func isInteger(word string) bool {
	word = strings.TrimPrefix(word, "-")
	if word == "" {
		return false
	}
	for _, c := range word {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
