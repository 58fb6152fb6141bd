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
package yaml

import (
	"github.com/yamlcore/yamlcore/internal/cst"
	"github.com/yamlcore/yamlcore/internal/sourcemap"
)

// NodeKind discriminates the AST node variants of spec.md §3:
// "Scalar | YAMLMap | YAMLSeq | Alias". A small sealed interface plus one
// concrete type per variant (rather than one Kind-tagged struct) follows
// the ast-package pattern used by goccy/go-yaml in the retrieval pack,
// while each concrete type still exposes Kind() so callers needing a type
// switch have a cheap discriminant, matching the design note's request for
// a "naturally tagged" union.
type NodeKind int

const (
	ScalarNodeKind NodeKind = iota
	MapNodeKind
	SeqNodeKind
	AliasNodeKind
	MergeNodeKind
)

// Node is the sealed AST node interface; Scalar, YAMLMap, YAMLSeq, Alias,
// and Merge are its only implementations.
type Node interface {
	Kind() NodeKind
	cstNode() *cst.Node
}

// base carries the fields every AST node shares: its resolved tag, an
// optional CST back-reference kept only when Options.KeepCstNodes is set
// (spec.md invariant 1), and the node's source range.
type base struct {
	Tag   string
	Range sourcemap.Range
	cst   *cst.Node
}

func (b *base) cstNode() *cst.Node { return b.cst }

// Scalar is a resolved leaf value: its parsed Go value, the tag that
// produced it, its original textual style, and an optional anchor name.
type Scalar struct {
	base
	Value  interface{}
	Type   ScalarType
	Anchor string
}

func (*Scalar) Kind() NodeKind { return ScalarNodeKind }

// Pair is one key/value entry of a YAMLMap. Either half may be nil (a
// null key, as in "{: value}", or a null value, as in "key:").
type Pair struct {
	Key   Node
	Value Node
}

// YAMLMap is an ordered mapping; insertion order is significant
// (spec.md §3).
type YAMLMap struct {
	base
	Items  []*Pair
	Anchor string
	Flow   bool
}

func (*YAMLMap) Kind() NodeKind { return MapNodeKind }

// YAMLSeq is an ordered sequence.
type YAMLSeq struct {
	base
	Items  []Node
	Anchor string
	Flow   bool
}

func (*YAMLSeq) Kind() NodeKind { return SeqNodeKind }

// Alias is a reference by anchor name to a previously-anchored node.
// Source points at the node the name resolved to and is set once when the
// document is resolved; it is not looked up again in the Document's anchor
// table afterwards.
type Alias struct {
	base
	Name   string
	Source Node
}

func (*Alias) Kind() NodeKind { return AliasNodeKind }

// Merge represents resolved YAML-1.1 "<<" semantics: a single alias, or a
// sequence of aliases, each of which must resolve to a mapping. Merge
// values are only produced when the active schema's AllowMerge is set
// (spec.md §3, §9 Open Question).
type Merge struct {
	base
	Value Node // *Alias or *YAMLSeq of *Alias
}

func (*Merge) Kind() NodeKind { return MergeNodeKind }

// TagPrefix records one %TAG directive: a handle ("!", "!!", "!local!")
// mapped to a tag URI (spec.md GLOSSARY).
type TagPrefix struct {
	Handle string
	Prefix string
}

// Document owns a resolved AST plus every piece of bookkeeping spec.md §3
// assigns it: contents, diagnostics, the anchor table, tag prefixes,
// version, and the schema it was resolved under.
type Document struct {
	Contents            Node
	Errors              []*YAMLError
	Warnings            []*YAMLError
	Anchors             map[string]Node
	TagPrefixes         []TagPrefix
	Version             string
	DirectivesEndMarker bool

	schema  *schemaHandle
	options Options
	source  *sourcemap.Map
	cstDoc  *cst.Node
}

// HasErrors reports whether the document carries any fatal diagnostic,
// the condition spec.md §4.4 refuses to stringify under: "A document
// carrying fatal errors is refused."
func (d *Document) HasErrors() bool { return len(d.Errors) > 0 }
