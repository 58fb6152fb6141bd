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

import "github.com/yamlcore/yamlcore/internal/sourcemap"

// parseBlockSeq parses a run of "- value" items that all start at column,
// per spec.md §4.1: "Block collection items share a column; an item
// starting at a column strictly less than the floor ends the collection."
func (p *parser) parseBlockSeq(column int, parentInFlow bool) *Node {
	start := p.pos
	n := &Node{Kind: BlockSeqKind, Context: Context{Indent: column}}
	for {
		dashPos := p.pos
		p.pos++ // '-'
		item := &Item{Column: column}
		p.skipInlineBlanks()
		if p.eof() || p.cur() == '\n' || p.cur() == '#' {
			if p.cur() == '#' {
				cstart := p.pos
				for !p.eof() && p.cur() != '\n' {
					p.pos++
				}
				item.LineComment = p.src[cstart:p.pos]
			}
			if !p.eof() && p.cur() == '\n' {
				p.pos++
			}
			head := p.skipBlankLines()
			if p.peekStructuralColumn() > column {
				item.Value = p.parseNode(column+1, false, head)
			}
		} else {
			item.Value = p.parseNode(column+1, false, "")
		}
		n.Items = append(n.Items, item)
		_ = dashPos

		save := p.pos
		p.skipBlankLines()
		if p.eof() {
			break
		}
		col := p.column()
		if col == column && p.isBlockSeqDash(false) {
			continue
		}
		if col > column {
			p.syntaxError(sourcemap.Range{Start: p.pos, End: p.pos + 1}, BlockSeqKind, "All collection items must start at the same column")
			p.pos = save
			break
		}
		p.pos = save
		break
	}
	n.Range = sourcemap.Range{Start: start, End: p.pos}
	return n
}

// peekStructuralColumn returns the indentation column of the next
// non-blank line without consuming input, or -1 at EOF.
func (p *parser) peekStructuralColumn() int {
	save := p.pos
	defer func() { p.pos = save }()
	p.skipBlankLines()
	if p.eof() {
		return -1
	}
	return p.column()
}

// parseBlockMap parses "key: value" items sharing column, per the same
// indentation rule as parseBlockSeq.
func (p *parser) parseBlockMap(column int) *Node {
	start := p.pos
	n := &Node{Kind: BlockMapKind, Context: Context{Indent: column}}
	for {
		item := p.parseBlockMapItem(column)
		n.Items = append(n.Items, item)

		save := p.pos
		p.skipBlankLines()
		if p.eof() {
			break
		}
		col := p.column()
		if col == column && p.looksLikeMapKey(column) && !p.isBlockSeqDash(false) {
			continue
		}
		if col > column && p.looksLikeMapKey(column) {
			p.semanticError(sourcemap.Range{Start: p.pos, End: p.pos + 1}, BlockMapKind, "All collection items must start at the same column")
			p.pos = save
			break
		}
		if col == column && !p.looksLikeMapKey(column) && !p.isBlockSeqDash(false) && !p.peekDocMarker() {
			// A bare token at the map's own column, with no ':' making it a
			// key of its own: trailing content rather than the start of a
			// new document.
			bad := p.parsePlain(false)
			p.semanticError(bad.Range, PlainValueKind, "Implicit map keys need to be followed by map values")
			break
		}
		p.pos = save
		break
	}
	n.Range = sourcemap.Range{Start: start, End: p.pos}
	return n
}

func (p *parser) parseBlockMapItem(column int) *Item {
	item := &Item{Column: column}
	keyStart := p.pos
	explicitKey := false
	if p.cur() == '?' && (p.at(1) == ' ' || p.at(1) == '\t' || p.at(1) == '\n') {
		explicitKey = true
		p.pos++
		p.skipInlineBlanks()
	}
	if p.eof() || p.cur() == '\n' {
		item.Key = nil
	} else if p.cur() == ':' && (p.at(1) == ' ' || p.at(1) == '\t' || p.at(1) == '\n' || p.at(1) == 0) {
		item.Key = nil
	} else {
		item.Key = p.parseKeyScalarOrNode(column)
	}
	_ = explicitKey
	_ = keyStart

	p.skipInlineBlanks()
	if !p.eof() && p.cur() == '\n' && explicitKey {
		p.pos++
		head := p.skipBlankLines()
		if p.peekStructuralColumn() > column {
			// "? key" with value on a following ": value" line handled by the
			// normal loop in parseBlockMap re-entering here as a fresh item;
			// to keep the item paired we parse the value node directly if
			// the next line looks like a lone ": value".
			if p.cur() == ':' {
				p.pos++
				p.skipInlineBlanks()
				item.Value = p.parseNode(column+1, false, "")
				return item
			}
			_ = head
		}
	}

	if p.eof() || p.cur() == '\n' || p.cur() == '#' {
		// bare key line with no colon encountered at all: trailing content.
		if item.Key != nil && !p.sawColonForItem {
			p.semanticError(item.Key.Range, PlainValueKind, "Implicit map keys need to be followed by map values")
		}
		if p.cur() == '#' {
			cstart := p.pos
			for !p.eof() && p.cur() != '\n' {
				p.pos++
			}
			item.LineComment = p.src[cstart:p.pos]
		}
		if !p.eof() && p.cur() == '\n' {
			p.pos++
		}
		p.sawColonForItem = false
		return item
	}

	if p.cur() == ':' {
		p.pos++
		p.sawColonForItem = true
		p.skipInlineBlanks()
		if p.eof() || p.cur() == '\n' || p.cur() == '#' {
			if p.cur() == '#' {
				cstart := p.pos
				for !p.eof() && p.cur() != '\n' {
					p.pos++
				}
				item.LineComment = p.src[cstart:p.pos]
			}
			if !p.eof() && p.cur() == '\n' {
				p.pos++
			}
			head := p.skipBlankLines()
			if p.peekStructuralColumn() > column {
				item.Value = p.parseNode(column+1, false, head)
			}
		} else {
			item.Value = p.parseNode(column+1, false, "")
		}
	}
	p.sawColonForItem = false
	return item
}

// parseKeyScalarOrNode parses the key half of a block-map item: usually a
// plain/quoted scalar, but a flow collection is also a legal (non-simple)
// key.
func (p *parser) parseKeyScalarOrNode(column int) *Node {
	switch p.cur() {
	case '"':
		return p.parseDoubleQuoted()
	case '\'':
		return p.parseSingleQuoted()
	case '[':
		return p.parseFlowSeq()
	case '{':
		return p.parseFlowMap()
	case '*':
		return p.parseAlias()
	default:
		start := p.pos
		var anchor, tag string
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
		n := p.parsePlainKey()
		n.Anchor, n.Tag = anchor, tag
		if n.Range.Start > start {
			n.Range.Start = start
		}
		return n
	}
}

func (p *parser) parsePlainKey() *Node {
	start := p.pos
	for !p.eof() {
		c := p.cur()
		if c == '\n' {
			break
		}
		if c == ':' && (p.at(1) == 0 || p.at(1) == ' ' || p.at(1) == '\t' || p.at(1) == '\n') {
			break
		}
		if p.inFlow > 0 && (c == ',' || c == '[' || c == ']' || c == '{' || c == '}') {
			break
		}
		p.pos++
	}
	raw := p.src[start:p.pos]
	for len(raw) > 0 && (raw[len(raw)-1] == ' ' || raw[len(raw)-1] == '\t') {
		raw = raw[:len(raw)-1]
	}
	return &Node{Kind: PlainValueKind, Raw: raw, Range: sourcemap.Range{Start: start, End: p.pos}}
}

// parseFlowSeq and parseFlowMap parse "[...]"/"{...}" with comma-separated
// items; an empty item (two consecutive commas, or a leading/trailing
// comma) raises a syntax error but the collection is kept (spec.md §4.1).
func (p *parser) parseFlowSeq() *Node {
	start := p.pos
	p.pos++ // '['
	p.inFlow++
	n := &Node{Kind: FlowSeqKind}
	p.parseFlowItems(n, ']')
	if !p.eof() && p.cur() == ']' {
		p.pos++
	} else {
		p.semanticError(sourcemap.Range{Start: p.pos, End: p.pos + 1}, FlowSeqKind, "missing closing flow sequence bracket")
	}
	p.inFlow--
	n.Range = sourcemap.Range{Start: start, End: p.pos}
	return n
}

func (p *parser) parseFlowMap() *Node {
	start := p.pos
	p.pos++ // '{'
	p.inFlow++
	n := &Node{Kind: FlowMapKind}
	p.parseFlowItems(n, '}')
	if !p.eof() && p.cur() == '}' {
		p.pos++
	} else {
		p.semanticError(sourcemap.Range{Start: p.pos, End: p.pos + 1}, FlowMapKind, "missing closing flow mapping brace")
	}
	p.inFlow--
	n.Range = sourcemap.Range{Start: start, End: p.pos}
	return n
}

func (p *parser) parseFlowItems(n *Node, closer byte) {
	first := true
	for {
		p.skipFlowBlanks()
		if p.eof() || p.cur() == closer {
			return
		}
		if p.cur() == ',' {
			cstart := p.pos
			p.syntaxError(sourcemap.Range{Start: cstart, End: cstart + 1}, n.Kind, "unexpected ',': empty flow collection item")
			p.pos++
			continue
		}
		_ = first
		first = false
		item := p.parseFlowItem(n.Kind)
		n.Items = append(n.Items, item)
		p.skipFlowBlanks()
		if !p.eof() && p.cur() == ',' {
			p.pos++
			continue
		}
		return
	}
}

func (p *parser) skipFlowBlanks() {
	for !p.eof() {
		switch p.cur() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		case '#':
			for !p.eof() && p.cur() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) parseFlowItem(kind Kind) *Item {
	item := &Item{}
	if kind == FlowMapKind {
		key := p.parseNode(0, true, "")
		item.Key = key
		p.skipFlowBlanks()
		if !p.eof() && p.cur() == ':' {
			p.pos++
			p.skipFlowBlanks()
			item.Value = p.parseNode(0, true, "")
		}
		return item
	}
	item.Value = p.parseNode(0, true, "")
	return item
}
