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
// Package cst implements the concrete-syntax-tree layer of the parser: a
// hand-written recursive-descent scanner that turns a complete YAML source
// string into an ordered sequence of Document trees preserving comments,
// whitespace-driven structure, and raw scalar text. It is grounded on the
// indentation/flow-level bookkeeping of a libyaml-style scanner/reader
// pair, rewritten as a tree-builder instead of an event-stream tokenizer
// so that the original syntax survives for round-trip stringification
// (spec.md §3, §4.1).
package cst

import "github.com/yamlcore/yamlcore/internal/sourcemap"

// Kind discriminates the CST node variants of spec.md §3. A single tagged
// struct (rather than a type per variant) matches the design note's
// "implement each as a discriminated variant... rather than a class
// hierarchy".
type Kind int

const (
	InvalidKind Kind = iota
	DocumentKind
	DirectiveKind
	BlockMapKind
	BlockSeqKind
	FlowMapKind
	FlowSeqKind
	PlainValueKind
	QuoteDoubleKind
	QuoteSingleKind
	BlockLiteralKind
	BlockFoldedKind
	AliasKind
	CommentKind
)

func (k Kind) String() string {
	switch k {
	case DocumentKind:
		return "DOCUMENT"
	case DirectiveKind:
		return "DIRECTIVE"
	case BlockMapKind:
		return "BLOCK_MAP"
	case BlockSeqKind:
		return "BLOCK_SEQ"
	case FlowMapKind:
		return "FLOW_MAP"
	case FlowSeqKind:
		return "FLOW_SEQ"
	case PlainValueKind:
		return "PLAIN"
	case QuoteDoubleKind:
		return "QUOTE_DOUBLE"
	case QuoteSingleKind:
		return "QUOTE_SINGLE"
	case BlockLiteralKind:
		return "BLOCK_LITERAL"
	case BlockFoldedKind:
		return "BLOCK_FOLDED"
	case AliasKind:
		return "ALIAS"
	case CommentKind:
		return "COMMENT"
	default:
		return "INVALID"
	}
}

// Context records the parent indent floor and flow nesting a node was
// parsed under, the "context (parent indent, at-line-start, inFlow,
// inCollection)" of spec.md §3.
type Context struct {
	Indent        int
	AtLineStart   bool
	InFlow        bool
	InCollection  bool
}

// Item is one entry of a block or flow collection: its own indentation
// column, key/value CST nodes (the key may be nil for a bare sequence
// entry or an implicit null key), and surrounding comments.
type Item struct {
	Column      int
	Key         *Node
	Value       *Node
	HeadComment string
	LineComment string
	FootComment string
}

// Node is the single tagged CST node type. Every node carries a byte range
// into the original source and the parse-time Context; mutation is only
// valid until the owning Document is returned from Parse, after which the
// tree is frozen (spec.md §3: "CST is mutable during parse but frozen
// afterwards"), enforced here by convention, not by the type system, as
// is idiomatic for a single-writer parser in Go.
type Node struct {
	Kind    Kind
	Range   sourcemap.Range
	Context Context

	// Scalar carriers (PlainValue, QuoteDouble, QuoteSingle, BlockLiteral,
	// BlockFolded, Alias).
	Raw       string // exact source text, including quotes/indicators
	Chomp     byte   // '-', '+', or 0 for block scalars
	IndentHint int   // explicit block-scalar indent indicator, 0 if absent

	// Decorations, may appear on any value node.
	Anchor      string
	Tag         string
	HeadComment string
	LineComment string
	FootComment string

	// Collections (BlockMap, BlockSeq, FlowMap, FlowSeq).
	Items []*Item

	// Document.
	Directives    []*Node // DirectiveKind children
	DirectivesEnd bool    // saw "---"
	DocumentEnd   bool    // saw "..."
	Contents      *Node

	// Directive.
	DirectiveName   string
	DirectiveParams []string
}

// Error is a CST-level diagnostic bound to the offending node's range, the
// raw material the AST resolver (root package yaml) wraps into
// YAMLSyntaxError/YAMLSemanticError values (spec.md §6, §7).
type Error struct {
	Semantic bool // false => syntax error, true => semantic error
	Message  string
	Range    sourcemap.Range
	NodeType Kind
}

func (e *Error) Error() string { return e.Message }
