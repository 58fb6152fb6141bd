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
package cst

import (
	"strings"

	"github.com/yamlcore/yamlcore/internal/sourcemap"
)

func isWordByte(c byte) bool {
	return c == '_' || c == '-' || (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (p *parser) parseHandle() string {
	p.pos++ // '&'
	start := p.pos
	for !p.eof() && isWordByte(p.cur()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parseAlias() *Node {
	start := p.pos
	p.pos++ // '*'
	nstart := p.pos
	for !p.eof() && isWordByte(p.cur()) {
		p.pos++
	}
	return &Node{Kind: AliasKind, Raw: p.src[nstart:p.pos], Range: sourcemap.Range{Start: start, End: p.pos}}
}

// parseTag reads a tag shorthand: "!", "!!foo", "!foo", or a verbatim
// "!<tag:yaml.org,2002:str>".
func (p *parser) parseTag() string {
	start := p.pos
	p.pos++ // '!'
	if !p.eof() && p.cur() == '<' {
		p.pos++
		vstart := p.pos
		for !p.eof() && p.cur() != '>' {
			p.pos++
		}
		tag := "!<" + p.src[vstart:p.pos] + ">"
		if !p.eof() {
			p.pos++
		}
		return tag
	}
	if !p.eof() && p.cur() == '!' {
		p.pos++
	}
	for !p.eof() && (isWordByte(p.cur()) || p.cur() == '%') {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parsePlain(inFlow bool) *Node {
	start := p.pos
	for !p.eof() {
		c := p.cur()
		switch {
		case c == '\n':
			goto done
		case c == ':' && (p.at(1) == 0 || p.at(1) == ' ' || p.at(1) == '\t' || p.at(1) == '\n'):
			goto done
		case inFlow && (c == ',' || c == '[' || c == ']' || c == '{' || c == '}'):
			goto done
		case c == '#' && p.pos > start && (p.src[p.pos-1] == ' ' || p.src[p.pos-1] == '\t'):
			goto done
		}
		p.pos++
	}
done:
	raw := strings.TrimRight(p.src[start:p.pos], " \t\r")
	return &Node{Kind: PlainValueKind, Raw: raw, Range: sourcemap.Range{Start: start, End: p.pos}}
}

func (p *parser) parseSingleQuoted() *Node {
	start := p.pos
	p.pos++ // opening '
	for !p.eof() {
		if p.cur() == '\'' {
			if p.at(1) == '\'' {
				p.pos += 2
				continue
			}
			p.pos++
			break
		}
		p.pos++
	}
	return &Node{Kind: QuoteSingleKind, Raw: p.src[start:p.pos], Range: sourcemap.Range{Start: start, End: p.pos}}
}

func (p *parser) parseDoubleQuoted() *Node {
	start := p.pos
	p.pos++ // opening "
	for !p.eof() {
		c := p.cur()
		if c == '\\' {
			p.pos += 2
			continue
		}
		if c == '"' {
			p.pos++
			break
		}
		p.pos++
	}
	return &Node{Kind: QuoteDoubleKind, Raw: p.src[start:p.pos], Range: sourcemap.Range{Start: start, End: p.pos}}
}

// parseBlockScalar parses "|" (literal) or ">" (folded), reading the
// chomping/indentation indicators and then every more-indented line,
// exactly the header spec.md §4.1 describes: "Block literals/folded
// scalars compute their content indent from the first non-empty content
// line unless an explicit indicator digit is present."
func (p *parser) parseBlockScalar(kind Kind, floor int) *Node {
	start := p.pos
	p.pos++ // '|' or '>'
	var chomp byte
	var indentHint int
	for !p.eof() && p.cur() != '\n' && p.cur() != '#' && p.cur() != ' ' && p.cur() != '\t' && p.cur() != '\r' {
		switch p.cur() {
		case '-', '+':
			chomp = p.cur()
		default:
			if p.cur() >= '1' && p.cur() <= '9' {
				indentHint = int(p.cur() - '0')
			}
		}
		p.pos++
	}
	p.consumeLineEnd()

	contentIndent := -1
	if indentHint > 0 {
		contentIndent = floor + indentHint
	}
	for !p.eof() {
		lineStart := p.pos
		col := 0
		for !p.eof() && p.cur() == ' ' {
			p.pos++
			col++
		}
		if p.eof() || p.cur() == '\n' {
			// blank line: belongs to the scalar regardless of indent
			if !p.eof() {
				p.pos++
			}
			continue
		}
		if contentIndent == -1 {
			contentIndent = col
		}
		if col < contentIndent {
			p.pos = lineStart
			break
		}
		for !p.eof() && p.cur() != '\n' {
			p.pos++
		}
		if !p.eof() {
			p.pos++
		}
	}
	bodyEnd := p.pos
	return &Node{
		Kind:       kind,
		Raw:        p.src[start:bodyEnd],
		Chomp:      chomp,
		IndentHint: indentHint,
		Range:      sourcemap.Range{Start: start, End: bodyEnd},
	}
}
