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
	"fmt"
	"strconv"
	"strings"

	"github.com/yamlcore/yamlcore/internal/common"
	"github.com/yamlcore/yamlcore/internal/cst"
	"github.com/yamlcore/yamlcore/internal/schema"
	"github.com/yamlcore/yamlcore/internal/sourcemap"
)

// schemaHandle binds a *schema.Schema to the custom tags registered on an
// Options value, so Document.SetSchema can rebind lazily (spec.md §3
// "Lifecycle": "their schema is bound either eagerly... or lazily (first
// call to setSchema)").
type schemaHandle struct {
	s *schema.Schema
}

func bindSchema(name string, custom []CustomTag) *schemaHandle {
	s := schema.New(name)
	for _, ct := range custom {
		s.AddCustomTag(&schema.Resolver{
			Tag:       ct.Tag,
			Accepts:   schema.ScalarKind,
			Resolve:   ct.Resolve,
			Stringify: ct.Stringify,
		})
	}
	return &schemaHandle{s: s}
}

// SetSchema (re)binds the document's schema by name, the lazy-binding path
// of spec.md §3.
func (d *Document) SetSchema(name string, custom []CustomTag) {
	d.schema = bindSchema(name, custom)
}

// resolver walks one CST document into an AST Document under a schema,
// spec.md §4.3's contract.
type resolver struct {
	doc     *Document
	schema  *schema.Schema
	anchors map[string]Node
	opts    Options
	src     *sourcemap.Map

	aliasWeight int // running total for the maxAliasCount guard
	fatal       bool
}

// ResolveCST converts one CST document into a Document AST, spec.md §4.3.
func ResolveCST(cstDoc *cst.Node, src *sourcemap.Map, srcText string, opts Options) *Document {
	opts = resolveOptionsSingle(opts)
	sh := bindSchema(opts.Schema, opts.CustomTags)
	doc := &Document{
		Anchors: make(map[string]Node),
		schema:  sh,
		options: opts,
		source:  src,
		cstDoc:  cstDoc,
	}
	r := &resolver{doc: doc, schema: sh.s, anchors: doc.Anchors, opts: opts, src: src}
	r.applyDirectives(cstDoc)
	if cstDoc.Contents != nil {
		doc.Contents = r.resolveNode(cstDoc.Contents)
	}
	if r.aliasWeight > maxAliasLimit(opts.MaxAliasCount) {
		doc.Errors = append(doc.Errors, newError(YAMLReferenceErrorName,
			"document contains excessive aliasing", "", cstDoc.Range))
	}
	finalizeDiagnostics(doc.Errors, src, opts.PrettyErrors, srcText)
	finalizeDiagnostics(doc.Warnings, src, opts.PrettyErrors, srcText)
	return doc
}

// resolveOptionsSingle only fills in Schema/Version when the caller built
// a Document directly against ResolveCST instead of going through one of
// the top-level entry points in yaml.go (which already fully resolve
// Options via resolveOptions). It deliberately leaves MaxAliasCount alone:
// 0 is the meaningful "disallow all aliases" value from spec.md §6, not an
// unset sentinel, so it must never be silently promoted to the 100
// default here.
func resolveOptionsSingle(o Options) Options {
	if o.Schema == "" {
		o.Schema = DefaultOptions().Schema
	}
	if o.Version == "" {
		o.Version = DefaultOptions().Version
	}
	return o
}

func maxAliasLimit(n int) int {
	if n < 0 {
		return int(^uint(0) >> 1) // disabled
	}
	return n
}

func (r *resolver) applyDirectives(doc *cst.Node) {
	r.doc.DirectivesEndMarker = doc.DirectivesEnd
	for _, d := range doc.Directives {
		switch d.DirectiveName {
		case "YAML":
			if len(d.DirectiveParams) == 1 {
				major := d.DirectiveParams[0]
				if !strings.HasPrefix(major, "1.") {
					r.doc.Warnings = append(r.doc.Warnings, newError(YAMLWarningName,
						"unsupported %YAML version, treating as 1.2", "DIRECTIVE", d.Range))
					r.doc.Version = "1.2"
				} else {
					r.doc.Version = major
				}
			}
		case "TAG":
			if len(d.DirectiveParams) == 2 {
				r.doc.TagPrefixes = append(r.doc.TagPrefixes, TagPrefix{
					Handle: d.DirectiveParams[0], Prefix: d.DirectiveParams[1],
				})
			}
		}
	}
	if r.doc.Version == "" {
		r.doc.Version = r.opts.Version
	}
}

// expandTag resolves an explicit shorthand tag ("!!foo", "!foo", or
// "!<uri>") against the document's %TAG prefix table, spec.md §4.3 step 2.
func (r *resolver) expandTag(raw string) (expanded string, ok bool) {
	if raw == "" || raw == "!" {
		return "", false
	}
	if strings.HasPrefix(raw, "!<") && strings.HasSuffix(raw, ">") {
		return raw[2 : len(raw)-1], true
	}
	for _, tp := range r.doc.TagPrefixes {
		if strings.HasPrefix(raw, tp.Handle) {
			return tp.Prefix + raw[len(tp.Handle):], true
		}
	}
	// Longest handle first, so "!!" is preferred over "!" for "!!foo".
	for i := len(common.DefaultTagDirectives) - 1; i >= 0; i-- {
		td := common.DefaultTagDirectives[i]
		if strings.HasPrefix(raw, td.Handle) {
			return td.Prefix + raw[len(td.Handle):], true
		}
	}
	return raw, true
}

func (r *resolver) resolveNode(n *cst.Node) Node {
	switch n.Kind {
	case cst.AliasKind:
		return r.resolveAlias(n)
	case cst.BlockMapKind, cst.FlowMapKind:
		return r.resolveMap(n)
	case cst.BlockSeqKind, cst.FlowSeqKind:
		return r.resolveSeq(n)
	default:
		return r.resolveScalar(n)
	}
}

func (r *resolver) registerAnchor(cstAnchor string, n Node) {
	if cstAnchor == "" {
		return
	}
	r.anchors[cstAnchor] = n
}

func (r *resolver) resolveAlias(n *cst.Node) Node {
	target, ok := r.anchors[n.Raw]
	a := &Alias{base: base{Range: n.Range}, Name: n.Raw}
	if r.opts.KeepCstNodes {
		a.cst = n
	}
	if !ok {
		r.doc.Errors = append(r.doc.Errors, newError(YAMLReferenceErrorName,
			fmt.Sprintf("unknown anchor '%s' referenced", n.Raw), "ALIAS", n.Range))
		a.Source = &Scalar{base: base{Tag: schema.NullTag}, Value: nil, Type: PLAIN}
		return a
	}
	a.Source = target
	r.aliasWeight += nodeWeight(target)
	return a
}

func nodeWeight(n Node) int {
	switch v := n.(type) {
	case *YAMLMap:
		w := 1
		for _, it := range v.Items {
			if it.Key != nil {
				w += nodeWeight(it.Key)
			}
			if it.Value != nil {
				w += nodeWeight(it.Value)
			}
		}
		return w
	case *YAMLSeq:
		w := 1
		for _, it := range v.Items {
			w += nodeWeight(it)
		}
		return w
	default:
		return 1
	}
}

func (r *resolver) explicitOrImplicit(explicitTag string) (tag string, resolve func(string) (interface{}, error), stringify func(interface{}) (string, bool), explicit bool) {
	if expanded, ok := r.expandTag(explicitTag); ok {
		if res, found := r.schema.Lookup(expanded); found {
			return res.Tag, res.Resolve, res.Stringify, true
		}
		r.doc.Warnings = append(r.doc.Warnings, newError(YAMLWarningName,
			fmt.Sprintf("tag %s is unavailable, falling back to tag:yaml.org,2002:str", explicitTag), "", sourcemap.Range{}))
		return "", nil, nil, false
	}
	return "", nil, nil, false
}

func (r *resolver) resolveScalar(n *cst.Node) Node {
	raw, styleType := unquote(n)
	var tag string
	var value interface{}

	if n.Tag != "" && n.Tag != "!" {
		t, resolveFn, _, explicit := r.explicitOrImplicit(n.Tag)
		if explicit {
			tag = t
			v, err := resolveFn(raw)
			if err != nil {
				r.doc.Errors = append(r.doc.Errors, newError(YAMLSemanticErrorName, err.Error(), "SCALAR", n.Range))
			}
			value = v
		} else {
			tag = schema.StrTag
			value = raw
		}
	} else if styleType != PLAIN {
		tag = schema.StrTag
		value = raw
	} else if raw == "<<" && r.schema.AllowMerge {
		tag = schema.MergeTag
		value = "<<"
	} else if res := r.schema.Implicit(raw); res != nil {
		tag = res.Tag
		v, err := res.Resolve(raw)
		if err != nil {
			r.doc.Errors = append(r.doc.Errors, newError(YAMLSemanticErrorName, err.Error(), "SCALAR", n.Range))
		}
		value = v
	} else {
		tag = schema.StrTag
		value = raw
	}

	s := &Scalar{base: base{Tag: tag, Range: n.Range}, Value: value, Type: styleType, Anchor: n.Anchor}
	if r.opts.KeepCstNodes {
		s.cst = n
	}
	r.registerAnchor(n.Anchor, s)
	return s
}

// unquote strips quote/indicator syntax from a CST scalar's raw text,
// producing the logical scalar content plus its style, per spec.md
// §4.1's scalar-lexing rules.
func unquote(n *cst.Node) (string, ScalarType) {
	switch n.Kind {
	case cst.QuoteSingleKind:
		inner := n.Raw
		if len(inner) >= 2 {
			inner = inner[1 : len(inner)-1]
		}
		return strings.ReplaceAll(inner, "''", "'"), QUOTE_SINGLE
	case cst.QuoteDoubleKind:
		inner := n.Raw
		if len(inner) >= 2 && strings.HasSuffix(inner, `"`) {
			inner = inner[1 : len(inner)-1]
		} else if len(inner) >= 1 {
			inner = inner[1:]
		}
		return unescapeDouble(inner), QUOTE_DOUBLE
	case cst.BlockLiteralKind, cst.BlockFoldedKind:
		return blockScalarContent(n), blockScalarType(n.Kind)
	default:
		return n.Raw, PLAIN
	}
}

func blockScalarType(k cst.Kind) ScalarType {
	if k == cst.BlockFoldedKind {
		return BLOCK_FOLDED
	}
	return BLOCK_LITERAL
}

// blockScalarContent reconstructs the logical content of a block literal
// or folded scalar: strip the header line, dedent every content line by
// its computed indent, fold/keep breaks per kind, and apply chomping
// (spec.md §4.1).
func blockScalarContent(n *cst.Node) string {
	text := n.Raw
	nl := strings.IndexByte(text, '\n')
	if nl < 0 {
		return ""
	}
	body := text[nl+1:]
	lines := strings.Split(body, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		c := 0
		for c < len(l) && l[c] == ' ' {
			c++
		}
		if indent == -1 || c < indent {
			indent = c
		}
	}
	if indent < 0 {
		indent = 0
	}
	dedented := make([]string, len(lines))
	for i, l := range lines {
		if len(l) >= indent {
			dedented[i] = l[indent:]
		} else {
			dedented[i] = ""
		}
	}

	var sb strings.Builder
	if n.Kind == cst.BlockFoldedKind {
		prevBlank := true
		for i, l := range dedented {
			if l == "" {
				sb.WriteByte('\n')
				prevBlank = true
				continue
			}
			indented := len(l) > 0 && (l[0] == ' ' || l[0] == '\t')
			if i > 0 && !prevBlank && !indented {
				sb.WriteByte(' ')
			} else if i > 0 && (prevBlank || indented) {
				sb.WriteByte('\n')
			}
			sb.WriteString(l)
			prevBlank = false
		}
	} else {
		for i, l := range dedented {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(l)
		}
	}
	out := sb.String()
	switch n.Chomp {
	case '-':
		out = strings.TrimRight(out, "\n")
	case '+':
		out = strings.TrimRight(out, "\n") + "\n"
	default:
		out = strings.TrimRight(out, "\n") + "\n"
	}
	return out
}

func unescapeDouble(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '0':
			sb.WriteByte(0)
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					sb.WriteByte(byte(v))
					i += 2
				}
			}
		case 'u':
			if i+4 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					sb.WriteRune(rune(v))
					i += 4
				}
			}
		case '\n':
			// line continuation: drop the break and following indentation
			for i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\t') {
				i++
			}
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func (r *resolver) resolveMap(n *cst.Node) Node {
	m := &YAMLMap{base: base{Range: n.Range}, Anchor: n.Anchor, Flow: n.Kind == cst.FlowMapKind}
	if n.Tag != "" {
		if t, ok := r.expandTag(n.Tag); ok {
			m.Tag = t
		}
	} else {
		m.Tag = schema.MapTag
	}
	if r.opts.KeepCstNodes {
		m.cst = n
	}
	r.registerAnchor(n.Anchor, m)

	seen := make(map[string]bool)
	for _, item := range n.Items {
		var key, value Node
		if item.Key != nil {
			key = r.resolveNode(item.Key)
		}
		if item.Value != nil {
			value = r.resolveNode(item.Value)
		}
		if sc, ok := key.(*Scalar); ok && sc.Tag == schema.MergeTag && r.schema.AllowMerge {
			value = &Merge{Value: value}
		}
		if key != nil {
			if sc, ok := key.(*Scalar); ok {
				k := fmt.Sprint(sc.Value)
				if seen[k] {
					r.doc.Warnings = append(r.doc.Warnings, newError(YAMLWarningName,
						"duplicate mapping key: "+k, "BLOCK_MAP", item.Key.Range))
				}
				seen[k] = true
			}
		}
		m.Items = append(m.Items, &Pair{Key: key, Value: value})
	}
	return m
}

func (r *resolver) resolveSeq(n *cst.Node) Node {
	s := &YAMLSeq{base: base{Range: n.Range}, Anchor: n.Anchor, Flow: n.Kind == cst.FlowSeqKind}
	if n.Tag != "" {
		if t, ok := r.expandTag(n.Tag); ok {
			s.Tag = t
		}
	} else {
		s.Tag = schema.SeqTag
	}
	if r.opts.KeepCstNodes {
		s.cst = n
	}
	r.registerAnchor(n.Anchor, s)
	for _, item := range n.Items {
		if item.Value != nil {
			s.Items = append(s.Items, r.resolveNode(item.Value))
		} else {
			s.Items = append(s.Items, &Scalar{base: base{Tag: schema.NullTag}, Value: nil, Type: PLAIN})
		}
	}
	return s
}
