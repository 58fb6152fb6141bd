//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
// Package sourcemap converts byte offsets into a YAML source string to
// (line, column) positions and back, and strips a leading byte-order mark
// the way a libyaml-style reader (yaml_parser_determine_encoding) detects
// encoding from a BOM before scanning begins.
package sourcemap

import "strings"

// Pos is a 1-indexed line/column position, matching the convention of
// libyaml-lineage mark fields (Mark.Line/Column), adjusted by +1 at the
// call site where the raw 0-indexed value is produced.
type Pos struct {
	Line int
	Col  int
}

// Range is a half-open byte range [Start, End) into the source string, the
// "range = [startOffset, endOffset)" carried by every CST node (spec §3).
type Range struct {
	Start int
	End   int
}

const bomUTF8 = "\xef\xbb\xbf"

// StripBOM removes a leading UTF-8 byte-order mark, returning the
// remaining bytes and whether one was present.
func StripBOM(src string) (string, bool) {
	if strings.HasPrefix(src, bomUTF8) {
		return src[len(bomUTF8):], true
	}
	return src, false
}

// Map resolves byte offsets into a fixed source string to line/column
// positions. It is built once per document and shared by every CST/AST
// node's range so that range math is O(log n) instead of a linear rescan.
type Map struct {
	src        string
	lineStarts []int // byte offset of the first byte of each line
	hasCR      bool
}

// New builds a Map over src. It performs the one-pass retrofit spec.md
// calls setOrigRanges and reports whether any CR was observed, exactly as
// §5 requires: "setOrigRanges performs a one-pass retrofit and returns
// whether any CR was observed."
func New(src string) *Map {
	m := &Map{src: src, lineStarts: []int{0}}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			m.hasCR = true
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			m.lineStarts = append(m.lineStarts, i+1)
		case '\n':
			m.lineStarts = append(m.lineStarts, i+1)
		}
	}
	return m
}

// HasCR reports whether the source contained any CR byte, the return
// value of setOrigRanges in spec.md §5.
func (m *Map) HasCR() bool { return m.hasCR }

// Pos converts a byte offset into the source into a 1-indexed line/column.
func (m *Map) Pos(offset int) Pos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.src) {
		offset = len(m.src)
	}
	// binary search for the line containing offset
	lo, hi := 0, len(m.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line := lo
	col := offset - m.lineStarts[line]
	return Pos{Line: line + 1, Col: col + 1}
}

// Slice returns the source text covered by r.
func (m *Map) Slice(r Range) string {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > len(m.src) {
		r.End = len(m.src)
	}
	if r.Start > r.End {
		return ""
	}
	return m.src[r.Start:r.End]
}

// Len returns the length of the underlying source in bytes.
func (m *Map) Len() int { return len(m.src) }
