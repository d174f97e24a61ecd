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

package reporter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the size we render all tabstops as.
const TabstopWidth = 4

// Render writes err to w. If err carries a position and src holds the
// contents of the file it points into, the offending line is quoted with a
// caret under the column the error refers to.
//
// The caret is aligned by display width, so wide and combining characters
// earlier on the line do not throw it off.
func Render(w io.Writer, err error, src []byte) error {
	if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
		return werr
	}

	var ewp ErrorWithPos
	if !errors.As(err, &ewp) {
		return nil
	}
	pos := ewp.GetPosition()
	line, ok := sourceLine(src, pos.Line)
	if !ok {
		return nil
	}

	gutter := fmt.Sprintf("%4d | ", pos.Line)
	width := uniseg.StringWidth(expandTabs(prefixClusters(line, pos.Col-1)))
	line = expandTabs(line)

	_, werr := fmt.Fprintf(w, "%s%s\n%s%s^\n",
		gutter, line,
		strings.Repeat(" ", len(gutter)-2)+"| ", strings.Repeat(" ", width))
	return werr
}

// sourceLine returns the 1-based line n of src, without its line ending.
func sourceLine(src []byte, n int) (string, bool) {
	if n <= 0 || src == nil {
		return "", false
	}
	for i := 1; i < n; i++ {
		idx := bytes.IndexByte(src, '\n')
		if idx < 0 {
			return "", false
		}
		src = src[idx+1:]
	}
	if idx := bytes.IndexByte(src, '\n'); idx >= 0 {
		src = src[:idx]
	}
	return strings.TrimSuffix(string(src), "\r"), true
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabstopWidth))
}

// prefixClusters returns the first n grapheme clusters of s.
func prefixClusters(s string, n int) string {
	if n <= 0 {
		return ""
	}
	end := 0
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}
