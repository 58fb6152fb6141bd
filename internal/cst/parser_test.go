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

package cst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore/internal/cst"
)

func TestParseEmptySourceYieldsNoDocuments(t *testing.T) {
	docs, errs, warns := cst.Parse("")
	require.Empty(t, docs)
	require.Empty(t, errs)
	require.Empty(t, warns)
}

func TestParseSingleFlowMapping(t *testing.T) {
	docs, errs, _ := cst.Parse("{a: 1, b: 2}\n")
	require.Empty(t, errs)
	require.Len(t, docs, 1)
	require.Equal(t, cst.FlowMapKind, docs[0].Contents.Kind)
	require.Len(t, docs[0].Contents.Items, 2)
}

func TestParseBlockMappingAndSequence(t *testing.T) {
	src := "a:\n  - 1\n  - 2\nb: hi\n"
	docs, errs, _ := cst.Parse(src)
	require.Empty(t, errs)
	require.Len(t, docs, 1)
	m := docs[0].Contents
	require.Equal(t, cst.BlockMapKind, m.Kind)
	require.Len(t, m.Items, 2)
	require.Equal(t, cst.BlockSeqKind, m.Items[0].Value.Kind)
	require.Len(t, m.Items[0].Value.Items, 2)
}

func TestParseMultipleDocuments(t *testing.T) {
	src := "---\na: 1\n---\na: 2\n"
	docs, errs, _ := cst.Parse(src)
	require.Empty(t, errs)
	require.Len(t, docs, 2)
}

func TestParseTabIndentationIsSemanticError(t *testing.T) {
	src := "a:\n\t- 1\n"
	_, errs, _ := cst.Parse(src)
	require.NotEmpty(t, errs)
	require.True(t, errs[0].Semantic)
}

func TestParseTrailingBareKeyIsSemanticError(t *testing.T) {
	src := "abc: 123\ndef\n"
	docs, errs, _ := cst.Parse(src)
	require.Len(t, docs, 1)
	found := false
	for _, e := range errs {
		if e.Semantic {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseUnterminatedFlowSequenceIsSemanticError(t *testing.T) {
	src := "[ foo, bar,\n"
	_, errs, _ := cst.Parse(src)
	require.NotEmpty(t, errs)
	require.True(t, errs[len(errs)-1].Semantic)
}

func TestParseEmptyFlowItemIsSyntaxError(t *testing.T) {
	src := "{ , }\n"
	_, errs, _ := cst.Parse(src)
	require.NotEmpty(t, errs)
	require.False(t, errs[0].Semantic)
}

func TestParseComments(t *testing.T) {
	src := "# head\na: 1 # line\n"
	docs, errs, _ := cst.Parse(src)
	require.Empty(t, errs)
	m := docs[0].Contents
	require.Equal(t, "# head", m.HeadComment)
	require.Equal(t, "# line", m.Items[0].Value.LineComment)
}

func TestParseAnchorAliasAndTag(t *testing.T) {
	src := "a: &x 1\nb: !!str *x\n"
	docs, errs, _ := cst.Parse(src)
	require.Empty(t, errs)
	m := docs[0].Contents
	require.Equal(t, "x", m.Items[0].Value.Anchor)
	require.Equal(t, cst.AliasKind, m.Items[1].Value.Kind)
	require.Equal(t, "!!str", m.Items[1].Value.Tag)
}

func TestParseBlockLiteralScalar(t *testing.T) {
	src := "a: |\n  line one\n  line two\n"
	docs, errs, _ := cst.Parse(src)
	require.Empty(t, errs)
	v := docs[0].Contents.Items[0].Value
	require.Equal(t, cst.BlockLiteralKind, v.Kind)
	require.Contains(t, v.Raw, "line one")
}

func TestParseDirectivesAndDocumentMarkers(t *testing.T) {
	src := "%YAML 1.2\n---\na: 1\n...\n"
	docs, errs, _ := cst.Parse(src)
	require.Empty(t, errs)
	require.Len(t, docs, 1)
	require.True(t, docs[0].DirectivesEnd)
	require.True(t, docs[0].DocumentEnd)
	require.Len(t, docs[0].Directives, 1)
	require.Equal(t, "YAML", docs[0].Directives[0].DirectiveName)
}
