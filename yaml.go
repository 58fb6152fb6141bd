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
// Package yaml implements the three-layer YAML 1.0/1.1/1.2 pipeline: a CST
// parser that turns source bytes into a concrete syntax tree preserving
// comments and raw text, an AST resolver that turns a CST document into a
// typed, schema-resolved Document, and a stringifier that turns a Document
// back into text. A Schema Registry governs implicit-type resolution, a
// Range/Source Map converts byte offsets to line/column positions for
// diagnostics, and Visit walks a resolved Document depth-first.
package yaml

import (
	"github.com/yamlcore/yamlcore/internal/cst"
	"github.com/yamlcore/yamlcore/internal/sourcemap"
)

// ParseCST runs only the first pipeline stage, returning the concrete
// syntax trees for every document in src plus any syntax/semantic
// diagnostics raised while scanning. Exposed for callers who need the raw
// tree (e.g. the KeepCstNodes option, or tooling that inspects comments
// without resolving values).
func ParseCST(src string) (docs []*cst.Node, errs []*YAMLError, warns []*YAMLError) {
	stripped, _ := sourcemap.StripBOM(src)
	cstDocs, cerrs, cwarns := cst.Parse(stripped)
	m := sourcemap.New(stripped)
	errs = convertCSTErrors(cerrs, m, true, stripped)
	warns = convertCSTErrors(cwarns, m, true, stripped)
	return cstDocs, errs, warns
}

func convertCSTErrors(in []*cst.Error, m *sourcemap.Map, pretty bool, srcText string) []*YAMLError {
	out := make([]*YAMLError, 0, len(in))
	for _, e := range in {
		name := YAMLSyntaxErrorName
		if e.Semantic {
			name = YAMLSemanticErrorName
		}
		out = append(out, newError(name, e.Message, e.NodeType.String(), e.Range))
	}
	finalizeDiagnostics(out, m, pretty, srcText)
	return out
}

// ParseDocument parses src and resolves only its first YAML document, the
// common case of spec.md §6's "parse(source, options?) -> Document". A
// source with no documents at all yields an empty Document with no
// Contents and no errors ("empty stream decodes to nothing").
func ParseDocument(src string, opts ...Options) *Document {
	docs := ParseAllDocuments(src, opts...)
	if len(docs) == 0 {
		o := resolveOptions(opts)
		return &Document{Anchors: map[string]Node{}, options: o}
	}
	return docs[0]
}

// ParseAllDocuments parses every "---"-separated document in src and
// resolves each one independently under the same Options, spec.md §6's
// "parseAllDocuments(source, options?) -> Document[]".
func ParseAllDocuments(src string, opts ...Options) []*Document {
	o := resolveOptions(opts)
	stripped, _ := sourcemap.StripBOM(src)
	m := sourcemap.New(stripped)

	cstDocs, cerrs, cwarns := cst.Parse(stripped)
	parseErrs := convertCSTErrors(cerrs, m, o.PrettyErrors, stripped)
	parseWarns := convertCSTErrors(cwarns, m, o.PrettyErrors, stripped)

	docs := make([]*Document, 0, len(cstDocs))
	for _, cd := range cstDocs {
		doc := ResolveCST(cd, m, stripped, o)
		if o.KeepCstNodes {
			doc.cstDoc = cd
		}
		doc.Errors = append(errorsInRange(parseErrs, cd.Range), doc.Errors...)
		doc.Warnings = append(errorsInRange(parseWarns, cd.Range), doc.Warnings...)
		docs = append(docs, doc)
	}
	return docs
}

// errorsInRange picks out the diagnostics whose byte range falls inside a
// single document's span, since cst.Parse reports syntax/semantic errors
// against the whole source stream rather than per document.
func errorsInRange(all []*YAMLError, r sourcemap.Range) []*YAMLError {
	out := make([]*YAMLError, 0, len(all))
	for _, e := range all {
		if e.Range.Start >= r.Start && e.Range.Start < r.End {
			out = append(out, e)
		}
	}
	return out
}

// Parse is an alias for ParseDocument, matching the lowercase verb spec.md
// §6 names directly ("parse(source, options?) -> Document").
func Parse(src string, opts ...Options) *Document {
	return ParseDocument(src, opts...)
}

// NewDocument builds a Document around an already-constructed AST (e.g.
// the output of CreateNode), bound to a schema and options the way a
// parsed Document is, so it can be passed straight to Stringify. This is
// the "wrap a tree built outside the parser" counterpart to ParseDocument.
func NewDocument(contents Node, opts ...Options) *Document {
	o := resolveOptions(opts)
	sh := bindSchema(o.Schema, o.CustomTags)
	return &Document{
		Contents: contents,
		Anchors:  map[string]Node{},
		schema:   sh,
		options:  o,
	}
}
