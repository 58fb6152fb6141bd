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

// Parse tokenises src into an ordered sequence of Document CST nodes, the
// contract of spec.md §4.1: "Input: a complete source string. Output: an
// ordered sequence of Document CST nodes." Errors and warnings discovered
// during the scan are returned alongside the documents rather than thrown,
// per spec.md §7's "all three are collected... without throwing."
func Parse(src string) (docs []*Node, errs []*Error, warns []*Error) {
	p := &parser{src: src}
	for {
		save := p.pos
		p.skipBlankLines()
		if p.eof() {
			break
		}
		p.pos = save
		docs = append(docs, p.parseDocument())
	}
	return docs, p.errs, p.warns
}

type parser struct {
	src  string
	pos  int
	errs []*Error
	// inFlow tracks nested flow-collection depth, consulted by plain-scalar
	// termination (spec.md §4.1 "terminates... at flow indicators when
	// inFlow") the same way scannerc.go tracks parser.flow_level.
	inFlow int
	warns  []*Error

	// sawColonForItem is set while parsing a block-map item once its ':'
	// separator has been consumed, so parseBlockMapItem can tell a genuine
	// bare trailing key (scenario 2 of spec.md §8) from a key whose value
	// was already attached.
	sawColonForItem bool
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) at(i int) byte {
	if p.pos+i >= len(p.src) {
		return 0
	}
	return p.src[p.pos+i]
}

func (p *parser) cur() byte { return p.at(0) }

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

// atLineStart reports whether pos is at column 0 of a line (start of
// source, or immediately after a line break).
func (p *parser) atLineStart() bool {
	return p.pos == 0 || p.src[p.pos-1] == '\n'
}

func (p *parser) column() int {
	i := p.pos
	col := 0
	for i > 0 && p.src[i-1] != '\n' {
		i--
		col++
	}
	return col
}

func (p *parser) syntaxError(r sourcemap.Range, nodeType Kind, msg string) {
	p.errs = append(p.errs, &Error{Message: msg, Range: r, NodeType: nodeType})
}

func (p *parser) semanticError(r sourcemap.Range, nodeType Kind, msg string) {
	p.errs = append(p.errs, &Error{Semantic: true, Message: msg, Range: r, NodeType: nodeType})
}

func (p *parser) warn(r sourcemap.Range, msg string) {
	p.warns = append(p.warns, &Error{Message: msg, Range: r})
}

// skipBlankLines consumes blank lines and full-line comments between
// structural elements, returning the last comment text seen (a head
// comment candidate for the next node).
func (p *parser) skipBlankLines() string {
	var lastComment string
	for !p.eof() {
		switch p.cur() {
		case ' ', '\t':
			p.pos++
		case '\r':
			p.pos++
		case '\n':
			p.pos++
		case '#':
			if p.atLineStart() || p.src[p.pos-1] == ' ' || p.src[p.pos-1] == '\t' {
				start := p.pos
				for !p.eof() && p.cur() != '\n' {
					p.pos++
				}
				lastComment = strings.TrimRight(p.src[start:p.pos], "\r")
			} else {
				return lastComment
			}
		default:
			return lastComment
		}
	}
	return lastComment
}

func (p *parser) skipSpacesTabs() (sawTab bool) {
	for !p.eof() && (p.cur() == ' ' || p.cur() == '\t') {
		if p.cur() == '\t' {
			sawTab = true
		}
		p.pos++
	}
	return
}

func (p *parser) consumeLineEnd() {
	for !p.eof() && p.cur() != '\n' {
		p.pos++
	}
	if !p.eof() {
		p.pos++
	}
}

func (p *parser) peekDocMarker() bool {
	return p.atLineStart() && (p.hasPrefix("---") || p.hasPrefix("..."))
}

// parseDocument implements the per-document state machine of spec.md
// §4.1: START → DIRECTIVES → CONTENT → END.
func (p *parser) parseDocument() *Node {
	start := p.pos
	doc := &Node{Kind: DocumentKind}

	// START: BOM already stripped by the caller; consume blanks/comments.
	lead := p.skipBlankLines()

	// DIRECTIVES
	for p.atLineStart() && p.cur() == '%' {
		doc.Directives = append(doc.Directives, p.parseDirective())
		p.skipBlankLines()
	}

	if p.atLineStart() && p.hasPrefix("---") && (p.at(3) == 0 || p.at(3) == ' ' || p.at(3) == '\n' || p.at(3) == '\r' || p.at(3) == '\t') {
		mstart := p.pos
		p.pos += 3
		doc.DirectivesEnd = true
		_ = mstart
		p.skipSpacesTabs()
	} else if len(doc.Directives) > 0 {
		last := doc.Directives[len(doc.Directives)-1]
		p.semanticError(last.Range, DirectiveKind, "directive without document")
	}

	// CONTENT
	head := p.skipBlankLines()
	if head == "" && len(doc.Directives) == 0 && !doc.DirectivesEnd {
		head = lead
	}
	if !p.eof() && !p.peekDocMarker() {
		doc.Contents = p.parseNode(0, false, head)
	}

	// END
	p.skipBlankLines()
	if p.atLineStart() && p.hasPrefix("...") {
		p.pos += 3
		doc.DocumentEnd = true
		p.consumeLineEnd()
	}

	doc.Range = sourcemap.Range{Start: start, End: p.pos}
	return doc
}

func (p *parser) parseDirective() *Node {
	start := p.pos
	p.pos++ // consume '%'
	nstart := p.pos
	for !p.eof() && p.cur() != ' ' && p.cur() != '\t' && p.cur() != '\n' {
		p.pos++
	}
	name := p.src[nstart:p.pos]
	p.skipSpacesTabs()
	var params []string
	pstart := p.pos
	for !p.eof() && p.cur() != '\n' {
		p.pos++
	}
	rest := strings.TrimRight(p.src[pstart:p.pos], "\r ")
	if rest != "" {
		params = strings.Fields(rest)
	}
	d := &Node{
		Kind:            DirectiveKind,
		DirectiveName:   name,
		DirectiveParams: params,
		Raw:             p.src[start:p.pos],
	}
	if name != "YAML" && name != "TAG" {
		p.warn(sourcemap.Range{Start: start, End: p.pos}, "unknown directive %"+name+" is preserved literally")
	}
	d.Range = sourcemap.Range{Start: start, End: p.pos}
	if !p.eof() {
		p.pos++ // newline
	}
	return d
}

// parseNode parses one value node: a scalar, a flow or block collection,
// or an alias. floor is the indentation column below which the current
// block collection ends; inFlowCtx disables block collections and the
// implicit-key lookahead; head is the comment attached as HeadComment.
func (p *parser) parseNode(floor int, inFlowCtx bool, head string) *Node {
	p.skipSpacesTabsIndentCheck(floor)
	if p.eof() {
		return nil
	}
	var anchor, tag string
	var decoStart = p.pos
	for {
		switch p.cur() {
		case '&':
			anchor = p.parseHandle()
			p.skipInlineBlanks()
			continue
		case '!':
			tag = p.parseTag()
			p.skipInlineBlanks()
			continue
		}
		break
	}
	// An anchor or tag alone on its line decorates the node on the
	// following, more-indented line.
	if !inFlowCtx && (anchor != "" || tag != "") && (p.cur() == '\n' || p.cur() == '\r') {
		save := p.pos
		p.skipBlankLines()
		if p.eof() || p.column() < floor {
			p.pos = save
		}
	}

	var n *Node
	switch {
	case p.cur() == '*':
		n = p.parseAlias()
	case p.cur() == '[':
		n = p.parseFlowSeq()
	case p.cur() == '{':
		n = p.parseFlowMap()
	case p.cur() == '|':
		n = p.parseBlockScalar(BlockLiteralKind, floor)
	case p.cur() == '>':
		n = p.parseBlockScalar(BlockFoldedKind, floor)
	case p.cur() == '"':
		n = p.parseDoubleQuoted()
	case p.cur() == '\'':
		n = p.parseSingleQuoted()
	case p.isBlockSeqDash(inFlowCtx):
		n = p.parseBlockSeq(p.column(), inFlowCtx)
	default:
		if !inFlowCtx && p.looksLikeMapKey(floor) {
			n = p.parseBlockMap(p.column())
		} else {
			n = p.parsePlain(inFlowCtx)
		}
	}
	if n == nil {
		return nil
	}
	n.Anchor = anchor
	n.Tag = tag
	n.HeadComment = head
	if n.Range.Start > decoStart {
		n.Range.Start = decoStart
	}
	p.attachTrailingLineComment(n)
	return n
}

func (p *parser) skipInlineBlanks() { p.skipSpacesTabs() }

// skipSpacesTabsIndentCheck skips leading indentation on a fresh line,
// raising a semantic error if a tab is used for structural indentation
// (spec.md §4.1: "Tabs are never valid for structural indentation").
func (p *parser) skipSpacesTabsIndentCheck(floor int) {
	// Callers often skip the indentation already, so the check looks back
	// to the start of the line rather than only at the current position.
	lineStart := p.pos
	for lineStart > 0 && p.src[lineStart-1] != '\n' {
		lineStart--
	}
	p.skipSpacesTabs()
	indent := p.src[lineStart:p.pos]
	if p.inFlow == 0 && strings.Trim(indent, " \t") == "" && strings.Contains(indent, "\t") {
		p.semanticError(sourcemap.Range{Start: lineStart, End: p.pos}, InvalidKind, "tab characters are not allowed for indentation")
		p.consumeLineEnd()
	}
}

func (p *parser) isBlockSeqDash(inFlow bool) bool {
	if inFlow {
		return false
	}
	if p.cur() != '-' {
		return false
	}
	next := p.at(1)
	return next == 0 || next == ' ' || next == '\t' || next == '\n'
}

// looksLikeMapKey resolves the plain-scalar-vs-implicit-key ambiguity by
// peeking for an unquoted ':' on the current logical line before the line
// ends, exactly the single lookahead spec.md §4.1 allows: "the only
// ambiguity... is resolved by peeking for a subsequent unquoted ':' on the
// same logical line before the line ends."
func (p *parser) looksLikeMapKey(floor int) bool {
	i := p.pos
	depth := 0
	inS, inD := false, false
	for i < len(p.src) {
		c := p.src[i]
		switch {
		case inS:
			if c == '\'' {
				if i+1 < len(p.src) && p.src[i+1] == '\'' {
					i++
				} else {
					inS = false
				}
			}
		case inD:
			if c == '\\' {
				i++
			} else if c == '"' {
				inD = false
			}
		case c == '\'':
			inS = true
		case c == '"':
			inD = true
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			if depth == 0 {
				return false
			}
			depth--
		case c == '\n':
			return false
		case c == '#' && i > p.pos && (p.src[i-1] == ' ' || p.src[i-1] == '\t'):
			return false
		case c == ':' && depth == 0:
			if i+1 >= len(p.src) || p.src[i+1] == ' ' || p.src[i+1] == '\t' || p.src[i+1] == '\n' {
				return true
			}
		case c == ',' && depth == 0 && p.inFlow > 0:
			return false
		}
		i++
	}
	return false
}

func (p *parser) attachTrailingLineComment(n *Node) {
	save := p.pos
	for !p.eof() && (p.cur() == ' ' || p.cur() == '\t') {
		p.pos++
	}
	if !p.eof() && p.cur() == '#' {
		start := p.pos
		for !p.eof() && p.cur() != '\n' {
			p.pos++
		}
		n.LineComment = strings.TrimRight(p.src[start:p.pos], "\r")
		return
	}
	p.pos = save
}
